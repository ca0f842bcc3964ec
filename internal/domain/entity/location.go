package entity

// Ubicaciones físicas del almacén. Enumeración cerrada: la mercancía solo
// sale del sistema consumiéndola desde SHIPPING.
const (
	LocationReceiving = "RECEIVING" // muelle de entrada
	LocationShelves   = "SHELVES"   // estantería (almacenamiento ambiente)
	LocationFreezer   = "FREEZER"   // congelador (almacenamiento en frío)
	LocationShipping  = "SHIPPING"  // zona de salida
)

// IsValidLocation verifica que la ubicación pertenezca a la enumeración.
func IsValidLocation(loc string) bool {
	switch loc {
	case LocationReceiving, LocationShelves, LocationFreezer, LocationShipping:
		return true
	}
	return false
}

// IsStorageLocation verifica que la ubicación sea de almacenamiento
// (destino válido de un put-away: SHELVES o FREEZER).
func IsStorageLocation(loc string) bool {
	return loc == LocationShelves || loc == LocationFreezer
}
