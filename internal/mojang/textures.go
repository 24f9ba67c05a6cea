package mojang

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// TexturesProperty is the name of the profile property holding textures.
const TexturesProperty = "textures"

const (
	steveSkinURL = "https://assets.mojang.com/SkinTemplates/steve.png"
	alexSkinURL  = "https://assets.mojang.com/SkinTemplates/alex.png"
)

var textureEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeTextures decodes a base64 encoded textures property value.
func DecodeTextures(value string) (*TexturesPayload, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: empty value", ErrMalformedTextures)
	}

	var raw []byte
	var err error
	for _, enc := range textureEncodings {
		if raw, err = enc.DecodeString(value); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTextures, err)
	}

	var payload TexturesPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTextures, err)
	}

	return &payload, nil
}

// EncodeTextures is the inverse of DecodeTextures.
func EncodeTextures(payload *TexturesPayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Textures decodes the profile's textures property.
// It returns nil without error if the profile has none.
func (p *Profile) Textures() (*TexturesPayload, error) {
	prop, ok := p.Property(TexturesProperty)
	if !ok {
		return nil, nil
	}
	return DecodeTextures(prop.Value)
}

// DefaultSkinModel returns the model of the default skin assigned to an
// identifier: slim (Alex) when the XOR of the four 32-bit words is odd.
func DefaultSkinModel(id string) string {
	parsed, err := parseID(id)
	if err != nil {
		return ModelClassic
	}
	if (parsed[3]^parsed[7]^parsed[11]^parsed[15])&1 == 1 {
		return ModelSlim
	}
	return ModelClassic
}

// DefaultSkinURL returns the template skin URL for an identifier.
func DefaultSkinURL(id string) string {
	if DefaultSkinModel(id) == ModelSlim {
		return alexSkinURL
	}
	return steveSkinURL
}

// EffectiveSkinURL returns the custom skin URL or the default skin URL.
func (r *Resolution) EffectiveSkinURL() string {
	if u := r.SkinURL(); u != "" {
		return u
	}
	return DefaultSkinURL(r.Identity.ID)
}
