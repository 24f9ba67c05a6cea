package mojang

// Identity is the result of the identity lookup (username -> id).
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Property is a signed profile property. The value of the "textures"
// property is base64 encoded JSON.
type Property struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// Profile is the session server profile record for an identifier.
type Profile struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Properties []Property `json:"properties"`
}

// Property returns the first property with the given name.
func (p *Profile) Property(name string) (Property, bool) {
	for _, prop := range p.Properties {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// TexturesPayload is the decoded value of the "textures" property.
type TexturesPayload struct {
	Timestamp         int64    `json:"timestamp"`
	ProfileID         string   `json:"profileId"`
	ProfileName       string   `json:"profileName"`
	SignatureRequired bool     `json:"signatureRequired,omitempty"`
	Textures          Textures `json:"textures"`
}

// Textures holds the skin and cape entries. Either may be absent.
type Textures struct {
	Skin *SkinTexture `json:"SKIN,omitempty"`
	Cape *CapeTexture `json:"CAPE,omitempty"`
}

// SkinTexture points at the skin image.
type SkinTexture struct {
	URL      string        `json:"url"`
	Metadata *SkinMetadata `json:"metadata,omitempty"`
}

// SkinMetadata carries the arm model. Only "slim" is ever sent.
type SkinMetadata struct {
	Model string `json:"model"`
}

// CapeTexture points at the cape image.
type CapeTexture struct {
	URL string `json:"url"`
}

// Skin models.
const (
	ModelClassic = "classic"
	ModelSlim    = "slim"
)

// Resolution is the result of a successful skin resolution.
type Resolution struct {
	Identity Identity         `json:"identity"`
	Profile  Profile          `json:"profile"`
	Textures *TexturesPayload `json:"textures,omitempty"`
}

// SkinURL returns the custom skin URL, or "" if the player uses a default skin.
func (r *Resolution) SkinURL() string {
	if r.Textures == nil || r.Textures.Textures.Skin == nil {
		return ""
	}
	return r.Textures.Textures.Skin.URL
}

// CapeURL returns the cape URL, or "" if the player has no cape.
func (r *Resolution) CapeURL() string {
	if r.Textures == nil || r.Textures.Textures.Cape == nil {
		return ""
	}
	return r.Textures.Textures.Cape.URL
}

// Model returns the arm model of the skin.
// Players without a custom skin get the model of their default skin.
func (r *Resolution) Model() string {
	if r.SkinURL() == "" {
		return DefaultSkinModel(r.Identity.ID)
	}
	if md := r.Textures.Textures.Skin.Metadata; md != nil && md.Model == ModelSlim {
		return ModelSlim
	}
	return ModelClassic
}
