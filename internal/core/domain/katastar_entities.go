package domain

// CadastralMunicipality is one row of the registry's cadastral
// municipality table.
type CadastralMunicipality struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// MunicipalityReference groups the cadastral municipalities belonging to
// one municipality of the public cadastral registry. The set is exported
// as a one-off reference artifact, not live pipeline output.
type MunicipalityReference struct {
	Code                    string                  `json:"code"`
	Name                    string                  `json:"name"`
	CadastralMunicipalities []CadastralMunicipality `json:"cadastral_municipalities"`
}
