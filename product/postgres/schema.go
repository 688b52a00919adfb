package postgres

import "github.com/jmoiron/sqlx"

func createProductTable(db *sqlx.DB) error {
	var schema = `
	CREATE TABLE IF NOT EXISTS product (
	id uuid DEFAULT uuid_generate_v4() PRIMARY KEY ,
	seller_id uuid NOT NULL,
	name text NOT NULL,
	price NUMERIC(12, 4) DEFAULT 0 NOT NULL,
	created_at timestamp DEFAULT now()
	                         )
	`
	_, err := db.Exec(schema)
	if err != nil {
		return err
	}
	return nil
}
