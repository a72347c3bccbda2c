package calculator

// rsiEpsilon replaces a zero mean loss so the RS division cannot blow up.
// This biases RSI toward 100 on loss-free windows instead of erroring, which
// is the observed behavior the rest of the pipeline depends on.
const rsiEpsilon = 1e-9

// DefaultRSIPeriod is the standard 14-session lookback.
const DefaultRSIPeriod = 14

// RSI computes the relative strength index over the last period changes:
// 100 - 100/(1+RS) with RS = meanGain/meanLoss. Requires period+1 values;
// undefined otherwise. Always bounded in [0, 100].
func RSI(values []float64, period int) float64 {
	if period <= 0 || len(values) < period+1 {
		return Undefined()
	}

	var gains, losses float64
	for i := len(values) - period; i < len(values); i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	meanGain := gains / float64(period)
	meanLoss := losses / float64(period)
	if meanLoss == 0 {
		meanLoss = rsiEpsilon
	}

	rs := meanGain / meanLoss
	return 100.0 - 100.0/(1.0+rs)
}
