package ocr

import (
	"github.com/gogpu/ink/handwriting"
)

// capHeightRatio approximates word box height over em size for mixed-case
// handwriting with few descenders.
const capHeightRatio = 0.9

// SuggestStyle derives a handwriting style whose size matches the text
// recognized on a page, so that generated fill-ins blend with it. base
// supplies every other attribute.
func SuggestStyle(res Result, base handwriting.Style) handwriting.Style {
	h := res.Confident(60)
	if len(h) == 0 {
		return base
	}
	size := Result{Words: h}.MedianHeight() / capHeightRatio
	base.FontSize = min(max(size, 8), 96)
	return base
}
