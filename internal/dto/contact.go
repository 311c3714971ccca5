package dto

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

type ContactResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

type ContactListResponse struct {
	Contacts []ContactEntry `json:"contacts"`
}

type ContactEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Company   *string `json:"company"`
	Phone     *string `json:"phone"`
	Message   string  `json:"message"`
	Source    string  `json:"source"`
	CreatedAt string  `json:"createdAt"`
}
