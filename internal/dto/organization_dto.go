package dto

type ApplyOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
