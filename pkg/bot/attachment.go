package bot

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Discord rejects oversized attachments; generated images are downscaled to
// this width and re-encoded as PNG before sending.
const maxImageWidth = 2048

const generatedImageName = "generated_image.png"

// normalizeImage re-encodes a generated image as PNG, downscaling when the
// provider returns something wider than Discord comfortably takes. Data that
// doesn't decode is passed through untouched and left for Discord to judge.
func normalizeImage(data []byte) []byte {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return data
	}
	return buf.Bytes()
}

func imageCaption(name, prompt string) string {
	return fmt.Sprintf("Thưa ngài %s, đây là ảnh theo yêu cầu %q ạ:", name, prompt)
}
