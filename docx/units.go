package docx

// WordprocessingML measures page geometry in twentieths of a point (twips),
// font sizes in half-points, paragraph spacing in twentieths of a point and
// line spacing in 240ths of a line.
const twipsPerCm = 567.0

func cmToTwips(cm float64) int {
	if cm < 0 {
		return -cmToTwips(-cm)
	}
	return int(cm*twipsPerCm + 0.5)
}

func twipsToCm(tw int) float64 {
	return float64(tw) / twipsPerCm
}

func ptToHalfPoints(pt float64) int {
	return int(pt*2 + 0.5)
}

func halfPointsToPt(hp int) float64 {
	return float64(hp) / 2
}

func ptToTwentieths(pt float64) int {
	return int(pt*20 + 0.5)
}

func twentiethsToPt(v int) float64 {
	return float64(v) / 20
}

func lineSpacingToOOXML(mult float64) int {
	return int(mult*240 + 0.5)
}

func lineSpacingFromOOXML(v int) float64 {
	return float64(v) / 240
}
