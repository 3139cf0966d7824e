package indicator

// VolumeZScore is the volume z-score against its trailing window mean and std
func VolumeZScore(volume []float64, window int) Series {
	return ZScore(volume, window)
}

// OnBalanceVolume accumulates signed volume: the first row is volume[0], then
// volume is added on an up close, subtracted on a down close, carried on a flat one.
func OnBalanceVolume(volume, close []float64) Series {
	out := make(Series, len(close))
	if len(close) == 0 {
		return out
	}
	out[0] = volume[0]
	for i := 1; i < len(close); i++ {
		switch {
		case close[i] > close[i-1]:
			out[i] = out[i-1] + volume[i]
		case close[i] < close[i-1]:
			out[i] = out[i-1] - volume[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

// VolumePriceTrend is the running sum of volume times return. The first row has no
// return and stays undefined; accumulation starts at the second row.
func VolumePriceTrend(volume, close []float64) Series {
	ret := Returns(close)
	out := NewSeries(len(close))
	var sum float64
	for i := 1; i < len(close); i++ {
		if Undefined(ret[i]) {
			continue
		}
		sum += volume[i] * ret[i]
		out[i] = sum
	}
	return out
}
