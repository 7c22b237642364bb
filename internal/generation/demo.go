package generation

import (
	"context"
	"time"
)

// DemoAudioRef is the locator the demo generator returns. Players treat the
// sim:// scheme as a simulated clock with no media behind it.
const DemoAudioRef = "sim://daily-brief"

const demoEnglish = `Welcome to the Smart Finance podcast.

Indian markets rallied yesterday. The Sensex closed 1.2% higher while the Nifty crossed the 18,500 mark, led by IT and banking stocks.

The Reserve Bank held rates steady, lifting investor sentiment, and foreign institutional investors bought ₹3,200 crore of equities.

That was today's Smart Finance brief. Thank you for listening!`

const demoHindi = `नमस्कार! स्मार्ट फाइनेंस पॉडकास्ट में आपका स्वागत है।

भारतीय बाजारों में कल जोरदार तेजी देखी गई। सेंसेक्स 1.2% की बढ़त के साथ बंद हुआ।

यह था आज का स्मार्ट फाइनेंस ब्रीफ। धन्यवाद!`

// Demo is an offline Generator that answers after a fixed delay with a
// canned script and simulated audio for every requested language.
type Demo struct {
	Delay time.Duration
	// NoAudio drops the audio locators to exercise the transcript-only path.
	NoAudio bool
}

// Generate waits for Delay or ctx, whichever comes first.
func (d Demo) Generate(ctx context.Context, req Request) (Result, error) {
	if d.Delay > 0 {
		timer := time.NewTimer(d.Delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Result{}, transportError(ctx.Err())
		}
	}

	resp := GenerateResponse{
		Status:  StatusOK,
		Name:    req.Name,
		Scripts: Scripts{English: demoEnglish, Hindi: demoHindi},
	}
	if !d.NoAudio {
		resp.Audio = Audio{English: DemoAudioRef, Hindi: DemoAudioRef}
	}
	return NewResult(req.Language, resp), nil
}
