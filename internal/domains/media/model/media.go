package model

import (
	"fmt"
	"time"

	"metalpedia-backend/internal/shared/utils"
)

// Kind identifies what an uploaded file is used for
type Kind string

const (
	KindAvatar     Kind = "avatar"
	KindAlbumCover Kind = "album_cover"
	KindBandLogo   Kind = "band_logo"
	KindBandImage  Kind = "band_image"
)

const KB = 1024

// MaxUploadBytes caps every multipart file regardless of kind
const MaxUploadBytes = 5 * 1024 * KB

// Rule is the size cap and transform applied to a kind
type Rule struct {
	MaxBytes  int64 // 0 means only MaxUploadBytes applies
	Grayscale bool
	TooLarge  string
}

var rules = map[Kind]Rule{
	KindAvatar:     {},
	KindAlbumCover: {MaxBytes: 200 * KB, TooLarge: "Cover image must be less than 200 KB"},
	KindBandLogo:   {MaxBytes: 200 * KB, Grayscale: true, TooLarge: "Logo must be less than 200 KB"},
	KindBandImage:  {MaxBytes: 500 * KB, Grayscale: true, TooLarge: "Band image must be less than 500 KB"},
}

func RuleFor(kind Kind) Rule {
	return rules[kind]
}

// Prefixes are the top level folders of the media bucket
const (
	PrefixBandLogos   = "band-logos/"
	PrefixBandImages  = "band-images/"
	PrefixAlbumCovers = "album-covers/"
	PrefixAvatars     = "avatars/"
)

var Prefixes = []string{PrefixBandLogos, PrefixBandImages, PrefixAlbumCovers, PrefixAvatars}

// File is an uploaded file held in memory
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f *File) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}

// Key builders. Millisecond timestamps keep keys unique per upload.

func SubmittedLogoKey(address string, now time.Time, fileName string) string {
	return fmt.Sprintf("%s%s/%d-%s", PrefixBandLogos, address, now.UnixMilli(), utils.CleanFileName(fileName))
}

func BandLogoKey(bandID string, now time.Time) string {
	return fmt.Sprintf("%s%s-%d-logo-bw.jpg", PrefixBandLogos, bandID, now.UnixMilli())
}

func BandImageKey(bandID string, now time.Time) string {
	return fmt.Sprintf("%s%s/%d-band-image-bw.jpg", PrefixBandImages, bandID, now.UnixMilli())
}

func AlbumCoverKey(bandID string, now time.Time, fileName string) string {
	return fmt.Sprintf("%s%s/%d-%s", PrefixAlbumCovers, bandID, now.UnixMilli(), utils.CleanFileName(fileName))
}

func AvatarKey(address, fileName string) string {
	return fmt.Sprintf("%s%s/%s", PrefixAvatars, address, utils.CleanFileName(fileName))
}
