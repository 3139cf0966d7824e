package indicator

import "math"

// TrueRange is max(high-low, |high-prevClose|, |low-prevClose|); the first row is high-low
func TrueRange(in Input) Series {
	out := make(Series, in.Len())
	for i := range out {
		tr := in.High[i] - in.Low[i]
		if i > 0 {
			prev := in.Close[i-1]
			tr = math.Max(tr, math.Max(math.Abs(in.High[i]-prev), math.Abs(in.Low[i]-prev)))
		}
		out[i] = tr
	}
	return out
}

// ATR is the rolling mean of the true range over period bars
func ATR(in Input, period int) Series {
	return RollingMean(TrueRange(in), period)
}
