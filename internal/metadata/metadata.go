// Package metadata extrait la géolocalisation et la date de prise de vue
// embarquées dans les photos (tags EXIF GPS et DateTimeOriginal).
package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// TimeLayout est le format EXIF de la date de prise de vue
const TimeLayout = "2006:01:02 15:04:05"

// ErrNoMetadata : l'image ne contient aucun bloc EXIF du tout.
// Distinct d'un bloc présent mais incomplet (MissingFieldError).
var ErrNoMetadata = errors.New("metadata: no exif block found")

// MissingFieldError : le bloc EXIF existe mais un champ attendu manque
type MissingFieldError struct {
	Field string // "gps" ou "datetime"
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("metadata: missing %s field", e.Field)
}

// PhotoMeta regroupe les métadonnées décodées d'une photo
type PhotoMeta struct {
	Latitude  float64
	Longitude float64
	TakenAt   time.Time // UTC
}

// Extract décode les coordonnées GPS et la date de prise de vue depuis
// les octets bruts d'une image
func Extract(image []byte) (*PhotoMeta, error) {
	x, err := exif.Decode(bytes.NewReader(image))
	if err != nil {
		return nil, ErrNoMetadata
	}

	lat, lng, err := decodeGPS(x)
	if err != nil {
		return nil, err
	}

	takenAt, err := decodeTakenAt(x)
	if err != nil {
		return nil, err
	}

	return &PhotoMeta{Latitude: lat, Longitude: lng, TakenAt: takenAt}, nil
}

func decodeGPS(x *exif.Exif) (float64, float64, error) {
	latRef, err := stringTag(x, exif.GPSLatitudeRef)
	if err != nil {
		return 0, 0, &MissingFieldError{Field: "gps"}
	}
	lat, err := dmsTag(x, exif.GPSLatitude)
	if err != nil {
		return 0, 0, &MissingFieldError{Field: "gps"}
	}
	lngRef, err := stringTag(x, exif.GPSLongitudeRef)
	if err != nil {
		return 0, 0, &MissingFieldError{Field: "gps"}
	}
	lng, err := dmsTag(x, exif.GPSLongitude)
	if err != nil {
		return 0, 0, &MissingFieldError{Field: "gps"}
	}

	return DecodeLatitude(latRef, lat), DecodeLongitude(lngRef, lng), nil
}

// DecodeLatitude convertit (degrés, minutes, secondes) en valeur décimale.
// Toute référence autre que "N" est traitée comme hémisphère sud.
func DecodeLatitude(ref string, dms [3]float64) float64 {
	if ref == "N" {
		return toDecimal(dms)
	}
	return -toDecimal(dms)
}

// DecodeLongitude convertit (degrés, minutes, secondes) en valeur décimale.
// Toute référence autre que "E" est traitée comme hémisphère ouest.
func DecodeLongitude(ref string, dms [3]float64) float64 {
	if ref == "E" {
		return toDecimal(dms)
	}
	return -toDecimal(dms)
}

func toDecimal(dms [3]float64) float64 {
	return dms[0] + dms[1]/60 + dms[2]/3600
}

func decodeTakenAt(x *exif.Exif) (time.Time, error) {
	raw, err := stringTag(x, exif.DateTimeOriginal)
	if err != nil {
		return time.Time{}, &MissingFieldError{Field: "datetime"}
	}

	// L'heure EXIF est naïve : on la normalise en UTC
	takenAt, err := time.ParseInLocation(TimeLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, &MissingFieldError{Field: "datetime"}
	}
	return takenAt, nil
}

func stringTag(x *exif.Exif, name exif.FieldName) (string, error) {
	tag, err := x.Get(name)
	if err != nil {
		return "", err
	}
	return tag.StringVal()
}

func dmsTag(x *exif.Exif, name exif.FieldName) ([3]float64, error) {
	var dms [3]float64
	tag, err := x.Get(name)
	if err != nil {
		return dms, err
	}
	if tag.Count < 3 || tag.Format() != tiff.RatVal {
		return dms, fmt.Errorf("metadata: tag %s is not a dms triple", name)
	}
	for i := 0; i < 3; i++ {
		num, den, err := tag.Rat2(i)
		if err != nil {
			return dms, err
		}
		if den == 0 {
			return dms, fmt.Errorf("metadata: tag %s has a zero denominator", name)
		}
		dms[i] = float64(num) / float64(den)
	}
	return dms, nil
}
