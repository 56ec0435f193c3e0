package entity

// ProjectStatusConfig describes one stage of the project pipeline.
type ProjectStatusConfig struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	SubStatuses []string `json:"subStatuses"`
	Note        string   `json:"note,omitempty"`
}

// NotificationSettings toggles which events raise notifications.
type NotificationSettings struct {
	NewProject          bool `json:"newProject"`
	PaymentConfirmation bool `json:"paymentConfirmation"`
	DeadlineReminder    bool `json:"deadlineReminder"`
}

// SecuritySettings holds account security toggles.
type SecuritySettings struct {
	TwoFactorEnabled bool `json:"twoFactorEnabled"`
}

// Profile is the single-row studio settings record.
type Profile struct {
	ID                   string                `json:"id" db:"id"`
	FullName             string                `json:"fullName" db:"full_name"`
	Email                string                `json:"email" db:"email"`
	Phone                string                `json:"phone" db:"phone"`
	CompanyName          string                `json:"companyName" db:"company_name"`
	Website              string                `json:"website" db:"website"`
	Address              string                `json:"address" db:"address"`
	BankAccount          string                `json:"bankAccount" db:"bank_account"`
	AuthorizedSigner     string                `json:"authorizedSigner" db:"authorized_signer"`
	Bio                  string                `json:"bio" db:"bio"`
	IncomeCategories     []string              `json:"incomeCategories" db:"income_categories"`
	ExpenseCategories    []string              `json:"expenseCategories" db:"expense_categories"`
	ProjectTypes         []string              `json:"projectTypes" db:"project_types"`
	EventTypes           []string              `json:"eventTypes" db:"event_types"`
	AssetCategories      []string              `json:"assetCategories" db:"asset_categories"`
	SOPCategories        []string              `json:"sopCategories" db:"sop_categories"`
	ProjectStatusConfig  []ProjectStatusConfig `json:"projectStatusConfig" db:"project_status_config"`
	NotificationSettings NotificationSettings  `json:"notificationSettings" db:"notification_settings"`
	SecuritySettings     SecuritySettings      `json:"securitySettings" db:"security_settings"`
	BriefingTemplate     string                `json:"briefingTemplate" db:"briefing_template"`
}

func (p Profile) RecordID() string { return p.ID }
