package store

// New selects a store backend the same way the teacher's
// auth.NewServiceFromEnv does (backend name plus any backend-specific
// settings resolved once at startup), with a safe in-memory default.
func New(backend, sqlitePath string) (PersonStore, DeckStore, func() error, error) {
	switch backend {
	case "sqlite":
		s, err := NewSQLiteStore(sqlitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s, s.Close, nil
	default:
		m := NewMemStore()
		return m, m, func() error { return nil }, nil
	}
}
