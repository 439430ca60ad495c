package util

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/twpayne/go-polyline"
)

var (
	RgxEmail         = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")
	shortCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

func IsEmail(value string) bool {
	if len(value) > 254 {
		return false
	}

	return RgxEmail.MatchString(value)
}

func IsURL(value string) bool {
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}

// Slugify turns a title into a lowercase, dash-separated URL fragment.
func Slugify(s string) string {
	var buf bytes.Buffer

	for _, r := range s {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsLetter(r):
			buf.WriteRune(unicode.ToLower(r))
		case unicode.IsDigit(r), r == '_', r == '-':
			buf.WriteRune(r)
		case unicode.IsSpace(r):
			buf.WriteRune('-')
		}
	}

	return buf.String()
}

func GenerateVerificationCode() string {
	rand.Seed(time.Now().UnixNano())
	return fmt.Sprintf("%04d", rand.Intn(10000))
}

func DecodePolyLines(shape string) ([][]float64, error) {
	decoded, _, err := polyline.DecodeCoords([]byte(shape))
	if err != nil {
		log.Println("error deocoding polyline: ", err)
		return nil, fmt.Errorf("failed to decode polyline %w", err)
	}
	return decoded, nil
}

// PolylineLengthMeters sums the haversine distance over a decoded polyline.
func PolylineLengthMeters(coords [][]float64) float64 {
	const earthRadius = 6371000 // meters

	var total float64
	for i := 1; i < len(coords); i++ {
		lat1 := coords[i-1][0] * math.Pi / 180
		lat2 := coords[i][0] * math.Pi / 180
		dLat := lat2 - lat1
		dLng := (coords[i][1] - coords[i-1][1]) * math.Pi / 180

		a := math.Sin(dLat/2)*math.Sin(dLat/2) +
			math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
		total += earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	}
	return total
}

func GenerateShortCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = shortCodeCharset[rand.Intn(len(shortCodeCharset))]
	}
	return string(b)
}
