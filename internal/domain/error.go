package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"422"`
	Category string `json:"category" example:"OVERLAPS_SIBLING"`
	Message  string `json:"message" example:"A zona sobrepõe zonas vizinhas."`
}
