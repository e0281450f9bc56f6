package postgres

import "github.com/mmcloughlin/geohash"

// Точности 5 (~5 км ячейка) достаточно, чтобы считать объекты "соседними"
const geohashPrecision = 5

// locationHash считает геохэш объявления по его координатам.
// Пустая строка означает, что координаты не заданы.
func locationHash(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return ""
	}
	return geohash.EncodeWithPrecision(*lat, *lng, geohashPrecision)
}
