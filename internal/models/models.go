package model

// All lists every persisted entity, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Board{},
		&Column{},
		&Task{},
		&MagicLink{},
	}
}
