// Package repository is the GORM persistence layer. Each repository maps
// between the storage models below and the domain types, translating GORM
// errors into domain errors at the boundary.
package repository

import (
	"time"

	"github.com/google/uuid"
)

// User is the stored shape of a user account.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"uniqueIndex;not null;size:50"`
	Email     string    `gorm:"uniqueIndex;not null;size:255"`
	Password  string    `gorm:"not null"`
	Role      string    `gorm:"size:20;not null;default:'user'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account is the stored shape of a money account.
type Account struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"size:100;not null"`
	Type        string    `gorm:"size:20;not null"`
	Balance     float64   `gorm:"not null;default:0"`
	Color       string    `gorm:"size:9"`
	Institution string    `gorm:"size:100"`
	IsActive    bool      `gorm:"not null;default:true"`
	IsHidden    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Category is a node of the per-user category tree.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Name      string     `gorm:"size:100;not null"`
	Color     string     `gorm:"size:9"`
	Type      string     `gorm:"size:10;not null"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction is a stored money movement. Tag links live in TransactionTag.
type Transaction struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	AccountID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	CategoryID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	ScheduleID  *uuid.UUID `gorm:"type:uuid;index"`
	Description string     `gorm:"size:255;not null"`
	Amount      float64    `gorm:"not null"`
	Date        time.Time  `gorm:"index;not null"`
	Notes       string     `gorm:"size:1000"`
	IsReviewed  bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionTag joins transactions and tags.
type TransactionTag struct {
	TransactionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID         uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// Tag is a stored transaction label.
type Tag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"size:50;not null"`
	Color     string    `gorm:"size:9"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Budget is a stored spending cap.
type Budget struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	CategoryID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name       string    `gorm:"size:100;not null"`
	Amount     float64   `gorm:"not null"`
	Period     string    `gorm:"size:10;not null"`
	StartDate  *time.Time
	EndDate    *time.Time
	IsActive   bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Goal is a stored savings target.
type Goal struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Name          string    `gorm:"size:100;not null"`
	Description   string    `gorm:"size:500"`
	TargetAmount  float64   `gorm:"not null"`
	CurrentAmount float64   `gorm:"not null;default:0"`
	TargetDate    time.Time `gorm:"not null"`
	IsCompleted   bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Alert is a stored notification. Metadata is serialized JSON.
type Alert struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	EntityID    *uuid.UUID `gorm:"type:uuid;index"`
	Type        string     `gorm:"size:30;not null"`
	Title       string     `gorm:"size:100;not null"`
	Message     string     `gorm:"size:500;not null"`
	Severity    string     `gorm:"size:10;not null"`
	IsRead      bool       `gorm:"not null;default:false"`
	IsDismissed bool       `gorm:"not null;default:false"`
	Metadata    []byte     `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Schedule is a stored recurring obligation.
type Schedule struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	AccountID     uuid.UUID `gorm:"type:uuid;index;not null"`
	CategoryID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name          string    `gorm:"size:100;not null"`
	Amount        float64   `gorm:"not null"`
	Type          string    `gorm:"size:10;not null"`
	Frequency     string    `gorm:"size:10;not null"`
	CustomDays    int       `gorm:"not null;default:0"`
	NextDate      time.Time `gorm:"index;not null"`
	EndDate       *time.Time
	IsActive      bool `gorm:"index;not null;default:true"`
	LastProcessed *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CryptoWallet is a stored asset container; it carries no balance column.
type CryptoWallet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"size:100;not null"`
	Address   string    `gorm:"size:128"`
	Network   string    `gorm:"size:50;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CryptoAsset is a stored position; USD value is computed, never stored.
type CryptoAsset struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	WalletID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Symbol      string    `gorm:"size:10;index;not null"`
	Name        string    `gorm:"size:100;not null"`
	MarketType  string    `gorm:"size:10;not null"`
	Amount      float64   `gorm:"not null"`
	PriceUSD    float64   `gorm:"not null;default:0"`
	Network     string    `gorm:"size:50;not null"`
	Protocol    string    `gorm:"size:50"`
	IsStaked    bool      `gorm:"not null;default:false"`
	StakingAPY  float64   `gorm:"not null;default:0"`
	LastUpdated time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AllModels lists every model for migration.
func AllModels() []any {
	return []any{
		&User{}, &Account{}, &Category{}, &Transaction{}, &TransactionTag{},
		&Tag{}, &Budget{}, &Goal{}, &Alert{}, &Schedule{},
		&CryptoWallet{}, &CryptoAsset{},
	}
}
