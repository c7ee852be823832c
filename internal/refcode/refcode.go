package refcode

import (
	"strings"
	"time"

	hashids "github.com/speps/go-hashids/v2"
)

// Alphabet excludes look-alike characters (0/O, 1/I) so codes read cleanly
// over the phone.
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generator produces short booking reference codes such as "BK-7NXQ2KJM".
// The same salt always maps the same timestamp to the same code, so the salt
// must stay stable across deployments.
type Generator struct {
	h *hashids.HashID
}

func NewGenerator(salt string) (*Generator, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 8
	data.Alphabet = alphabet

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, err
	}
	return &Generator{h: h}, nil
}

// Generate encodes the current timestamp into a reference code.
func (g *Generator) Generate() (string, error) {
	return g.generateAt(time.Now())
}

func (g *Generator) generateAt(t time.Time) (string, error) {
	code, err := g.h.EncodeInt64([]int64{t.UnixMilli()})
	if err != nil {
		return "", err
	}
	return "BK-" + strings.ToUpper(code), nil
}
