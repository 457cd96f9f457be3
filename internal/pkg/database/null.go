package database

import "database/sql"

// NullString converte um ponteiro opcional para o parâmetro aceito pelo driver.
func NullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

// StringPtr é o inverso de NullString na leitura.
func StringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
