package export

import (
	"fmt"
	"image"
	"image/gif"
	"os"

	"github.com/google/uuid"
)

// UniqueName builds "prefix-xxxxxxxx.ext" with a random id, so repeated
// snapshots and recordings never collide.
func UniqueName(prefix, ext string) string {
	return fmt.Sprintf("%s-%s.%s", prefix, uuid.NewString()[:8], ext)
}

// SaveGIF encodes captured frames as a looping GIF. delay is per frame in
// hundredths of a second.
func SaveGIF(path string, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames captured")
	}
	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, anim)
}
