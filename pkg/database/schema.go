package database

import (
	"context"
	"fmt"
)

// CreateSchema creates the database schema for the booking service
func (db *DB) CreateSchema(ctx context.Context) error {
	db.logger.Info("Creating database schema...")

	if err := db.createExtensions(ctx); err != nil {
		return fmt.Errorf("failed to create extensions: %w", err)
	}

	tables := []string{
		createDoctorsTable,
		createPatientsTable,
		createBookingsTable,
		createNotificationsTable,
		createLogsTable,
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		createPatientsIndexes,
		createBookingsIndexes,
		createNotificationsIndexes,
		createLogsIndexes,
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	db.logger.Info("Database schema created successfully")
	return nil
}

// createExtensions creates required PostgreSQL extensions
func (db *DB) createExtensions(ctx context.Context) error {
	extensions := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, ext := range extensions {
		if _, err := db.ExecContext(ctx, ext); err != nil {
			return fmt.Errorf("failed to create extension: %w", err)
		}
	}

	return nil
}

// SQL DDL statements for table creation. Booking times are naive local
// timestamps; the service does no timezone handling.
const (
	createDoctorsTable = `
		CREATE TABLE IF NOT EXISTS doctors (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			email VARCHAR(255) UNIQUE NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			middle_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL,
			date_of_birth DATE NOT NULL,
			gender VARCHAR(10) NOT NULL,
			phone_no VARCHAR(15) NOT NULL
		);`

	createPatientsTable = `
		CREATE TABLE IF NOT EXISTS patients (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			doctor_id UUID NOT NULL REFERENCES doctors(id),
			email VARCHAR(255) UNIQUE NOT NULL,
			pass_hash VARCHAR(100) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			middle_name VARCHAR(100) NOT NULL DEFAULT '',
			last_name VARCHAR(100) NOT NULL,
			date_of_birth DATE NOT NULL,
			gender VARCHAR(10) NOT NULL,
			phone_no VARCHAR(15) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);`

	createBookingsTable = `
		CREATE TABLE IF NOT EXISTS bookings (
			seq BIGSERIAL,
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			doctor_id UUID NOT NULL REFERENCES doctors(id),
			patient_id UUID NOT NULL REFERENCES patients(id),
			booking_time TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			type VARCHAR(50) NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			prescription TEXT NOT NULL DEFAULT ''
		);`

	createNotificationsTable = `
		CREATE TABLE IF NOT EXISTS notifications (
			seq BIGSERIAL,
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			patient_id UUID NOT NULL REFERENCES patients(id),
			header VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			unread BOOLEAN NOT NULL DEFAULT TRUE
		);`

	createLogsTable = `
		CREATE TABLE IF NOT EXISTS logs (
			seq BIGSERIAL,
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			patient_id UUID NOT NULL REFERENCES patients(id),
			message TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		);`
)

// SQL DDL statements for index creation
const (
	createPatientsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_patients_email ON patients(email);
		CREATE INDEX IF NOT EXISTS idx_patients_doctor_id ON patients(doctor_id);`

	createBookingsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_bookings_patient_id ON bookings(patient_id);
		CREATE INDEX IF NOT EXISTS idx_bookings_doctor_id ON bookings(doctor_id);
		CREATE INDEX IF NOT EXISTS idx_bookings_booking_time ON bookings(booking_time);`

	createNotificationsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_notifications_patient_id ON notifications(patient_id);`

	createLogsIndexes = `
		CREATE INDEX IF NOT EXISTS idx_logs_patient_id ON logs(patient_id);`
)
