package completion

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// TokenEstimator counts tokens for text the backend did not report usage for.
type TokenEstimator interface {
	CountTokens(text string) int
}

// TiktokenEstimator counts BPE tokens, loading the encoding on first use.
// When the encoding cannot be loaded it counts words instead.
type TiktokenEstimator struct {
	encoding string
	logger   *slog.Logger

	once sync.Once
	enc  *tiktoken.Tiktoken
}

// NewTiktokenEstimator constructs an estimator for the cl100k_base encoding.
func NewTiktokenEstimator(logger *slog.Logger) *TiktokenEstimator {
	return &TiktokenEstimator{
		encoding: defaultEncoding,
		logger:   logger.With("component", "completion.estimator"),
	}
}

// CountTokens implements TokenEstimator.
func (e *TiktokenEstimator) CountTokens(text string) int {
	e.once.Do(func() {
		enc, err := tiktoken.GetEncoding(e.encoding)
		if err != nil {
			e.logger.Warn("tiktoken encoding unavailable, counting words", "encoding", e.encoding, "error", err)
			return
		}
		e.enc = enc
	})
	if e.enc == nil {
		return WordCount(text)
	}
	return len(e.enc.Encode(text, nil, nil))
}

// WordCount is the fallback estimate: whitespace-separated fields.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
