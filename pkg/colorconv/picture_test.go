package colorconv

import "testing"

func TestPicture_Matches(t *testing.T) {
	yuv := NewPicture(5, 3, YUV420)
	if !yuv.Matches(5, 3, YUV420) {
		t.Error("fresh picture should match its own geometry")
	}
	if yuv.Matches(5, 3, RGB) {
		t.Error("yuv picture should not match rgb")
	}
	if yuv.Matches(4, 3, YUV420) {
		t.Error("picture should not match a different width")
	}

	yuv.Planes[2] = yuv.Planes[2][:1]
	if yuv.Matches(5, 3, YUV420) {
		t.Error("truncated chroma plane should not match")
	}

	var nilPic *Picture
	if nilPic.Matches(1, 1, RGB) {
		t.Error("nil picture should not match")
	}
}

func TestPicture_PlaneGeometry(t *testing.T) {
	yuv := NewPicture(5, 3, YUV420)
	if yuv.PlaneWidth(0) != 5 || yuv.PlaneHeight(0) != 3 {
		t.Errorf("luma plane: got %dx%d", yuv.PlaneWidth(0), yuv.PlaneHeight(0))
	}
	if yuv.PlaneWidth(1) != 3 || yuv.PlaneHeight(1) != 2 {
		t.Errorf("chroma plane: got %dx%d", yuv.PlaneWidth(1), yuv.PlaneHeight(1))
	}

	rgb := NewPicture(5, 3, RGB)
	if rgb.PlaneWidth(0) != 15 || len(rgb.Planes[0]) != 45 {
		t.Errorf("rgb plane: width %d, len %d", rgb.PlaneWidth(0), len(rgb.Planes[0]))
	}
}
