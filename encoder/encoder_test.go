package encoder

import (
	"fmt"
	"testing"
)

func TestBuildArgsInput(t *testing.T) {
	in, _ := buildArgs(Options{Width: 1280, Height: 720, FPS: 60, Codec: "h264"})
	if in["f"] != "rawvideo" {
		t.Fatalf("f = %v, want rawvideo", in["f"])
	}
	if in["pix_fmt"] != "rgba" {
		t.Fatalf("pix_fmt = %v, want rgba", in["pix_fmt"])
	}
	if in["s"] != "1280x720" {
		t.Fatalf("s = %v, want 1280x720", in["s"])
	}
	if fmt.Sprint(in["r"]) != "60" {
		t.Fatalf("r = %v, want 60", in["r"])
	}
}

func TestBuildArgsHEVCTagForMP4(t *testing.T) {
	_, out := buildArgs(Options{OutputFile: "out.mp4", Width: 16, Height: 16, Codec: "hevc"})
	if out["tag:v"] != "hvc1" {
		t.Fatalf("tag:v = %v, want hvc1", out["tag:v"])
	}
	_, out = buildArgs(Options{OutputFile: "out.mkv", Width: 16, Height: 16, Codec: "hevc"})
	if _, ok := out["tag:v"]; ok {
		t.Fatal("hvc1 tag applied outside mp4")
	}
}

func TestBuildArgsVFlipAndBitrate(t *testing.T) {
	_, out := buildArgs(Options{Width: 16, Height: 16, VFlip: true, Bitrate: "25M"})
	if out["vf"] != "vflip" {
		t.Fatalf("vf = %v, want vflip", out["vf"])
	}
	if out["b:v"] != "25M" {
		t.Fatalf("b:v = %v, want 25M", out["b:v"])
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := New(Options{Width: 16, Height: 16}); err == nil {
		t.Fatal("New accepted empty output file")
	}
	if _, err := New(Options{OutputFile: "out.mp4", Width: 0, Height: 16}); err == nil {
		t.Fatal("New accepted zero width")
	}
}
