package textwidth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slidegraph/slidegraph/lib/textwidth"
)

func TestUnits(t *testing.T) {
	assert.Equal(t, 5.0, textwidth.Units("hello"))
	// wide runes take two cells each
	assert.Equal(t, 4.0, textwidth.Units("日本"))
	assert.Equal(t, 7.0, textwidth.Units("ab日本c"))
}

func TestEstimateSize(t *testing.T) {
	w, h := textwidth.EstimateSize("", 14)
	assert.Equal(t, 0.0, w)
	assert.Equal(t, 0.0, h)

	w, h = textwidth.EstimateSize("hello", 10)
	assert.Equal(t, 5*10*textwidth.CharWidthRatio, w)
	assert.Equal(t, 10*textwidth.LineHeightRatio, h)

	// widest line wins, every line adds height
	w, h = textwidth.EstimateSize("hi\nlonger line", 10)
	assert.Equal(t, 11*10*textwidth.CharWidthRatio, w)
	assert.Equal(t, 2*10*textwidth.LineHeightRatio, h)
}

func TestWrappedHeight(t *testing.T) {
	// 20 units at 10px wraps to 2 lines in a 60px frame (10 units per line)
	h := textwidth.WrappedHeight("aaaaaaaaaaaaaaaaaaaa", 10, 60)
	assert.Equal(t, 2*10*textwidth.LineHeightRatio, h)

	// short titles stay on one line
	h = textwidth.WrappedHeight("api", 10, 200)
	assert.Equal(t, 10*textwidth.LineHeightRatio, h)

	assert.Equal(t, 0.0, textwidth.WrappedHeight("", 10, 100))
}
