// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup, migrations, health ping
//	├── users/           # User directory (lookup by email, insert)
//	└── audit/           # Auth event trail (insert, list by email, prune)
//
// Initialize the connection once and hand repositories the gorm handle:
//
//	db, err := database.NewDatabase("./school-app.db")
//	usersRepo := users.NewRepository(db.DB)
//
// Email uniqueness is enforced by a unique index, and gorm is opened with
// TranslateError so violations come back as gorm.ErrDuplicatedKey.
package database
