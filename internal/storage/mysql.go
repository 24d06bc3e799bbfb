package storage

import (
	"database/sql"
	"fmt"

	"card-tokenizer/internal/config"
	"card-tokenizer/internal/logger"
	"card-tokenizer/internal/models"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLStore struct {
	db  *sql.DB
	log *logger.Logger
}

func NewMySQLStore(cfg config.DatabaseConfig, log *logger.Logger) (*MySQLStore, error) {
	log.LogDatabase("CONNECT", "mysql", fmt.Sprintf("Connecting to MySQL at %s:%s", cfg.Host, cfg.Port))

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Error("DATABASE", "Failed to open MySQL connection: "+err.Error())
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := db.Ping(); err != nil {
		log.Error("DATABASE", "Failed to ping MySQL: "+err.Error())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &MySQLStore{
		db:  db,
		log: log,
	}

	if err := store.initTables(); err != nil {
		log.Error("DATABASE", "Failed to initialize tables: "+err.Error())
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	log.LogDatabase("SUCCESS", "mysql", "MySQL connection established and tables initialized")
	return store, nil
}

func (s *MySQLStore) initTables() error {
	s.log.LogDatabase("MIGRATE", "mysql", "Creating token_records table if not exists")

	query := `
    CREATE TABLE IF NOT EXISTS token_records (
        record_id VARCHAR(64) PRIMARY KEY,
        token_id VARCHAR(64) NOT NULL DEFAULT '',
        status VARCHAR(50) NOT NULL,
        brand VARCHAR(50) NOT NULL DEFAULT '',
        last4 VARCHAR(4) NOT NULL DEFAULT '',
        livemode BOOLEAN NOT NULL DEFAULT FALSE,
        error_code VARCHAR(64) NOT NULL DEFAULT '',
        idempotency_key VARCHAR(255) NOT NULL DEFAULT '',
        created_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        updated_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
        INDEX idx_token_id (token_id),
        INDEX idx_status (status),
        INDEX idx_idempotency_key (idempotency_key)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
    `

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create token_records table: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "mysql", "token_records table ready")
	return nil
}

func (s *MySQLStore) SaveRecord(record *models.TokenRecord) error {
	s.log.LogDatabase("INSERT", "token_records", fmt.Sprintf("Saving record %s", record.RecordID))

	query := `
    INSERT INTO token_records (
        record_id, token_id, status, brand, last4, livemode, error_code, idempotency_key, created_date, updated_date
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.Exec(query,
		record.RecordID, record.TokenID, record.Status, record.Brand, record.Last4,
		record.Livemode, record.ErrorCode, record.IdempotencyKey, record.CreatedDate, record.UpdatedDate,
	)

	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to save record %s: %s", record.RecordID, err.Error()))
		return fmt.Errorf("failed to save record: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "token_records", fmt.Sprintf("Record %s saved successfully", record.RecordID))
	return nil
}

func (s *MySQLStore) GetRecord(recordID string) (*models.TokenRecord, error) {
	s.log.LogDatabase("SELECT", "token_records", fmt.Sprintf("Fetching record %s", recordID))

	query := `
    SELECT record_id, token_id, status, brand, last4, livemode, error_code, idempotency_key, created_date, updated_date
    FROM token_records WHERE record_id = ?
    `

	return s.scanRecord(s.db.QueryRow(query, recordID), recordID)
}

func (s *MySQLStore) GetRecordByTokenID(tokenID string) (*models.TokenRecord, error) {
	s.log.LogDatabase("SELECT", "token_records", fmt.Sprintf("Fetching record for token %s", tokenID))

	query := `
    SELECT record_id, token_id, status, brand, last4, livemode, error_code, idempotency_key, created_date, updated_date
    FROM token_records WHERE token_id = ?
    `

	return s.scanRecord(s.db.QueryRow(query, tokenID), tokenID)
}

func (s *MySQLStore) scanRecord(row *sql.Row, id string) (*models.TokenRecord, error) {
	record := &models.TokenRecord{}
	err := row.Scan(
		&record.RecordID, &record.TokenID, &record.Status, &record.Brand, &record.Last4,
		&record.Livemode, &record.ErrorCode, &record.IdempotencyKey, &record.CreatedDate, &record.UpdatedDate,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			s.log.LogDatabase("NOT_FOUND", "token_records", fmt.Sprintf("Record %s not found", id))
			return nil, fmt.Errorf("record not found")
		}
		s.log.Error("DATABASE", fmt.Sprintf("Failed to get record %s: %s", id, err.Error()))
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "token_records", fmt.Sprintf("Record %s fetched successfully", record.RecordID))
	return record, nil
}

func (s *MySQLStore) UpdateRecord(record *models.TokenRecord) error {
	s.log.LogDatabase("UPDATE", "token_records", fmt.Sprintf("Updating record %s", record.RecordID))

	query := `
    UPDATE token_records SET
        token_id = ?, status = ?, brand = ?, last4 = ?, livemode = ?, error_code = ?, updated_date = ?
    WHERE record_id = ?
    `

	_, err := s.db.Exec(query,
		record.TokenID, record.Status, record.Brand, record.Last4, record.Livemode,
		record.ErrorCode, record.UpdatedDate, record.RecordID,
	)

	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to update record %s: %s", record.RecordID, err.Error()))
		return fmt.Errorf("failed to update record: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "token_records", fmt.Sprintf("Record %s updated successfully", record.RecordID))
	return nil
}

func (s *MySQLStore) ListRecords(status models.TokenStatus, limit, offset int) ([]*models.TokenRecord, error) {
	s.log.LogDatabase("SELECT", "token_records", fmt.Sprintf("Listing %s records (limit: %d, offset: %d)", status, limit, offset))

	query := `
    SELECT record_id, token_id, status, brand, last4, livemode, error_code, idempotency_key, created_date, updated_date
    FROM token_records
    WHERE (? = '' OR status = ?)
    ORDER BY created_date DESC
    LIMIT ? OFFSET ?
    `

	rows, err := s.db.Query(query, status, status, limit, offset)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to list records: %s", err.Error()))
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*models.TokenRecord
	for rows.Next() {
		record := &models.TokenRecord{}
		err := rows.Scan(
			&record.RecordID, &record.TokenID, &record.Status, &record.Brand, &record.Last4,
			&record.Livemode, &record.ErrorCode, &record.IdempotencyKey, &record.CreatedDate, &record.UpdatedDate,
		)

		if err != nil {
			s.log.Error("DATABASE", fmt.Sprintf("Failed to scan record row: %s", err.Error()))
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Row iteration error: %s", err.Error()))
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	s.log.LogDatabase("SUCCESS", "token_records", fmt.Sprintf("Listed %d %s records", len(records), status))
	return records, nil
}

func (s *MySQLStore) Close() error {
	s.log.LogDatabase("CLOSE", "mysql", "Closing MySQL connection")
	return s.db.Close()
}

func (s *MySQLStore) HealthCheck() error {
	return s.db.Ping()
}
