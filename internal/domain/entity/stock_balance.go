package entity

import "time"

// StockBalance representa la cantidad de un producto en una ubicación del
// almacén. Clave compuesta (ProductID, Location); la fila se crea de forma
// perezosa con la primera referencia. Invariante: Quantity >= 0 siempre.
type StockBalance struct {
	ProductID string
	Location  string
	Quantity  int64
	UpdatedAt time.Time
}
