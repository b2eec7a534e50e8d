package repository

func schemaFor(d Dialect) []string {
	switch d {
	case DialectPostgres:
		return postgresSchema
	case DialectMySQL:
		return mysqlSchema
	default:
		return sqliteSchema
	}
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		author_id TEXT NOT NULL,
		category_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id TEXT PRIMARY KEY,
		listing_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		amount REAL NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		listing_id TEXT NOT NULL,
		author_id TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE,
		FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS watchlist (
		user_id TEXT NOT NULL,
		listing_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, listing_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_category_id ON listings(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_author_id ON listings(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bids_listing_amount ON bids(listing_id, amount)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_listing_created ON comments(listing_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_watchlist_listing_id ON watchlist(listing_id)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id VARCHAR(36) PRIMARY KEY,
		author_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category_id VARCHAR(36) NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
		title VARCHAR(64) NOT NULL,
		description VARCHAR(300) NOT NULL,
		image_url VARCHAR(200) NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id VARCHAR(36) PRIMARY KEY,
		listing_id VARCHAR(36) NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
		user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		amount DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id VARCHAR(36) PRIMARY KEY,
		listing_id VARCHAR(36) NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
		author_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		body VARCHAR(300) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS watchlist (
		user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		listing_id VARCHAR(36) NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (user_id, listing_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_category_id ON listings(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_author_id ON listings(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bids_listing_amount ON bids(listing_id, amount DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_listing_created ON comments(listing_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_watchlist_listing_id ON watchlist(listing_id)`,
}

// MySQL has no CREATE INDEX IF NOT EXISTS, so indexes are declared inline.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(254) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		first_name VARCHAR(150) NOT NULL DEFAULT '',
		last_name VARCHAR(150) NOT NULL DEFAULT '',
		created_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id VARCHAR(36) PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		expires_at DATETIME(6) NOT NULL,
		revoked_at DATETIME(6) NULL,
		INDEX idx_sessions_user_id (user_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(64) NOT NULL,
		created_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS listings (
		id VARCHAR(36) PRIMARY KEY,
		author_id VARCHAR(36) NOT NULL,
		category_id VARCHAR(36) NOT NULL,
		title VARCHAR(64) NOT NULL,
		description VARCHAR(300) NOT NULL,
		image_url VARCHAR(200) NOT NULL DEFAULT '',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_listings_created_at (created_at),
		INDEX idx_listings_category_id (category_id),
		INDEX idx_listings_author_id (author_id),
		FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS bids (
		id VARCHAR(36) PRIMARY KEY,
		listing_id VARCHAR(36) NOT NULL,
		user_id VARCHAR(36) NOT NULL,
		amount DOUBLE NOT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_bids_listing_amount (listing_id, amount),
		FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS comments (
		id VARCHAR(36) PRIMARY KEY,
		listing_id VARCHAR(36) NOT NULL,
		author_id VARCHAR(36) NOT NULL,
		body VARCHAR(300) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_comments_listing_created (listing_id, created_at),
		FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE,
		FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS watchlist (
		user_id VARCHAR(36) NOT NULL,
		listing_id VARCHAR(36) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		PRIMARY KEY (user_id, listing_id),
		INDEX idx_watchlist_listing_id (listing_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (listing_id) REFERENCES listings(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}
