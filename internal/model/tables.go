package model

const (
	ContactSubmissionsTable = "ContactSubmissions"
	ChatLogsTable           = "ChatLogs"
	AdminUsersTable         = "AdminUsers"
)

// ContactSubmissionItem is one contact-form submission. Rows are insert-only;
// nothing in the system updates or deletes them.
type ContactSubmissionItem struct {
	ID        string  `dynamodbav:"id"`
	Name      string  `dynamodbav:"name"`
	Email     string  `dynamodbav:"email"`
	Company   *string `dynamodbav:"company,omitempty"`
	Phone     *string `dynamodbav:"phone,omitempty"`
	Message   string  `dynamodbav:"message"`
	Source    string  `dynamodbav:"source"`
	CreatedAt string  `dynamodbav:"createdAt"`
}

// ChatLogItem is one completed assistant turn. Optional fields are pointers so
// an absent value is stored as a missing attribute, never an empty string.
type ChatLogItem struct {
	ID             string  `dynamodbav:"id"`
	SessionID      *string `dynamodbav:"sessionId,omitempty"`
	ConversationID string  `dynamodbav:"conversationId"`
	UserMessage    string  `dynamodbav:"userMessage"`
	AIResponse     *string `dynamodbav:"aiResponse,omitempty"`
	Country        *string `dynamodbav:"country,omitempty"`
	City           *string `dynamodbav:"city,omitempty"`
	IPAddress      string  `dynamodbav:"ipAddress"`
	UserAgent      string  `dynamodbav:"userAgent"`
	Referrer       *string `dynamodbav:"referrer,omitempty"`
	CreatedAt      string  `dynamodbav:"createdAt"`
}

type AdminUserItem struct {
	Email        string `dynamodbav:"email"`
	Name         string `dynamodbav:"name"`
	PasswordHash string `dynamodbav:"passwordHash"`
	CreatedAt    string `dynamodbav:"createdAt"`
}
