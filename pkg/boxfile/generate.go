package boxfile

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

const (
	minSamples   = 5
	sampleSpread = 50

	// Height estimate for a card rendered at the default column width.
	cardChrome   = 48.0 // title line, border and padding
	lineHeight   = 20.0
	charsPerLine = 36
)

var (
	words = strings.Fields(`lorem ipsum dolor sit amet consectetur adipiscing elit sed do
eiusmod tempor incididunt ut labore et dolore magna aliqua enim ad minim veniam
quis nostrud exercitation ullamco laboris nisi aliquip ex ea commodo consequat
duis aute irure in reprehenderit voluptate velit esse cillum fugiat nulla
pariatur excepteur sint occaecat cupidatat non proident sunt culpa qui officia
deserunt mollit anim id est laborum`)

	authors = []string{
		"Ada Brandt", "Jun Okafor", "Mira Castell", "Theo Lindqvist",
		"Noor Haddad", "Ilse Varga", "Sam Oduya", "Lena Moreau",
	}

	genres = []string{"essay", "fiction", "poetry", "review", "report", "letter"}
)

// Generate returns n sample boxes drawn from seed. When n is not positive the
// count itself is drawn from 5..54. The same seed always yields the same boxes.
func Generate(n int, seed uint64) []Box {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	r := rand.New(src)

	if n <= 0 {
		n = r.IntN(sampleSpread) + minSamples
	}

	boxes := make([]Box, n)
	for i := range boxes {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			// ChaCha8 reads never fail.
			panic(err)
		}
		span := sampleSpan(r.Float64())
		body := sentences(r, 1+r.IntN(6))
		boxes[i] = Box{
			Key:    id.String(),
			Span:   span,
			Height: EstimateHeight(body, span),
			Title:  title(r),
			Author: authors[r.IntN(len(authors))],
			Genre:  genres[r.IntN(len(genres))],
			Body:   body,
		}
	}
	return boxes
}

// sampleSpan maps a uniform draw to the demo span mix.
func sampleSpan(v float64) int {
	switch {
	case v > 0.4:
		return 1
	case v > 0.2:
		return 2
	case v > 0.1:
		return 3
	default:
		return 1
	}
}

// EstimateHeight approximates the rendered height of body in a card spanning
// span columns.
func EstimateHeight(body string, span int) float64 {
	if span < 1 {
		span = 1
	}
	lines := math.Ceil(float64(len(body)) / float64(charsPerLine*span))
	return cardChrome + lines*lineHeight
}

func title(r *rand.Rand) string {
	n := 2 + r.IntN(4)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[r.IntN(len(words))]
	}
	parts[0] = capitalize(parts[0])
	return strings.Join(parts, " ")
}

func sentences(r *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		count := 6 + r.IntN(12)
		for j := 0; j < count; j++ {
			w := words[r.IntN(len(words))]
			if j == 0 {
				w = capitalize(w)
			} else {
				b.WriteByte(' ')
			}
			b.WriteString(w)
		}
		b.WriteByte('.')
	}
	return b.String()
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
