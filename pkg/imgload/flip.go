package imgload

// FlipVertical reverses the row order of a packed pixel buffer in place.
func FlipVertical(pix []byte, stride, height int) {
	if stride <= 0 || height < 2 || len(pix) < stride*height {
		return
	}
	tmp := make([]byte, stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// Flip reverses the row order and toggles the recorded origin.
func (img *Image) Flip() {
	FlipVertical(img.Pix, img.Stride(), img.Height)
	img.Origin = img.Origin.opposite()
}
