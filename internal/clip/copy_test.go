package clip

import (
	"reflect"
	"strings"
	"testing"
)

func TestCopyFlagsResolve(t *testing.T) {
	tests := []struct {
		name    string
		flags   CopyFlags
		want    CopyOptions
		wantErr string
	}{
		{
			name:  "defaults map all with fast seek",
			flags: CopyFlags{AudioIndex: -1},
			want:  CopyOptions{Map: MapAll, AudioIndex: -1},
		},
		{
			name:  "main only",
			flags: CopyFlags{MainOnly: true, AudioIndex: -1},
			want:  CopyOptions{Map: MapDefault, AudioIndex: -1},
		},
		{
			name:  "audio index implies track mapping",
			flags: CopyFlags{MainOnly: true, AudioIndex: 1},
			want:  CopyOptions{Map: MapAudioTrack, AudioIndex: 1},
		},
		{
			name:  "audio lang implies track mapping",
			flags: CopyFlags{MainOnly: true, AudioIndex: -1, AudioLang: "ITA"},
			want:  CopyOptions{Map: MapAudioTrack, AudioIndex: -1, AudioLang: "ita"},
		},
		{
			name:    "both seek modes",
			flags:   CopyFlags{FastSeek: true, AccurateSeek: true, AudioIndex: -1},
			wantErr: "only one of --fast-seek or --accurate-seek",
		},
		{
			name:    "map all with audio index",
			flags:   CopyFlags{MapAll: true, AudioIndex: 1},
			wantErr: "cannot be used with --map-all",
		},
		{
			name:    "implicit map all with audio index",
			flags:   CopyFlags{AudioIndex: 1},
			wantErr: "cannot be used with --map-all",
		},
		{
			name:    "audio index with audio lang",
			flags:   CopyFlags{MainOnly: true, AudioIndex: 1, AudioLang: "ita"},
			wantErr: "only one of --audio-index or --audio-lang",
		},
		{
			name:    "invalid language tag",
			flags:   CopyFlags{MainOnly: true, AudioIndex: -1, AudioLang: "!!"},
			wantErr: "invalid audio language tag",
		},
		{
			name:    "negative audio index",
			flags:   CopyFlags{MainOnly: true, AudioIndex: -3},
			wantErr: "--audio-index must be >= 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.Resolve()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Resolve() err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(): %v", err)
			}
			if got != tt.want {
				t.Fatalf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildCopyArgsFastSeekComputedTrim(t *testing.T) {
	req := Request{Input: "movie.mkv", Start: "00:01:00", End: "00:01:30", Output: "clip.mkv"}
	got, err := BuildCopyArgs(req, CopyOptions{Map: MapAll, AudioIndex: -1})
	if err != nil {
		t.Fatalf("BuildCopyArgs: %v", err)
	}
	want := []string{
		"-hide_banner",
		"-ss", "00:01:00",
		"-fflags", "+genpts",
		"-i", "movie.mkv",
		"-t", "00:00:30",
		"-map", "0",
		"-c", "copy",
		"-reset_timestamps", "1",
		"-avoid_negative_ts", "make_zero",
		"-y", "clip.mkv",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("args mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestBuildCopyArgsAccurateSeekPlacement(t *testing.T) {
	req := Request{Input: "movie.mkv", Start: "600", Duration: "30", Output: "clip.mkv"}
	got, err := BuildCopyArgs(req, CopyOptions{AccurateSeek: true, Map: MapDefault, AudioIndex: -1})
	if err != nil {
		t.Fatalf("BuildCopyArgs: %v", err)
	}

	iPos, ssPos := -1, -1
	for i, a := range got {
		switch a {
		case "-i":
			iPos = i
		case "-ss":
			ssPos = i
		}
	}
	if iPos == -1 || ssPos == -1 || ssPos < iPos {
		t.Fatalf("accurate seek must place -ss after -i: %v", got)
	}
	for _, a := range got {
		if a == "-map" {
			t.Fatalf("default stream selection must not emit -map: %v", got)
		}
	}
}

func TestBuildCopyArgsAudioTrackMapping(t *testing.T) {
	req := Request{Input: "movie.mkv", Start: "0", Duration: "10", Output: "clip.mkv"}

	got, err := BuildCopyArgs(req, CopyOptions{Map: MapAudioTrack, AudioIndex: 1})
	if err != nil {
		t.Fatalf("BuildCopyArgs: %v", err)
	}
	joined := strings.Join(got, " ")
	if !strings.Contains(joined, "-map 0:v:0 -map 0:a:1") {
		t.Fatalf("expected explicit index mapping, got %q", joined)
	}

	got, err = BuildCopyArgs(req, CopyOptions{Map: MapAudioTrack, AudioIndex: -1, AudioLang: "ita"})
	if err != nil {
		t.Fatalf("BuildCopyArgs: %v", err)
	}
	joined = strings.Join(got, " ")
	if !strings.Contains(joined, "-map 0:v:0 -map 0:a:m:language:ita") {
		t.Fatalf("expected language mapping, got %q", joined)
	}
}

func TestBuildCopyArgsKeepTimestamps(t *testing.T) {
	req := Request{Input: "movie.mkv", Start: "0", Duration: "10", Output: "clip.mkv"}
	got, err := BuildCopyArgs(req, CopyOptions{Map: MapAll, AudioIndex: -1, KeepTimestamps: true})
	if err != nil {
		t.Fatalf("BuildCopyArgs: %v", err)
	}
	for _, a := range got {
		if a == "-reset_timestamps" {
			t.Fatalf("keep-timestamps must suppress -reset_timestamps: %v", got)
		}
	}
}

func TestBuildCopyArgsNonPositiveWindow(t *testing.T) {
	req := Request{Input: "movie.mkv", Start: "00:01:30", End: "00:01:00"}
	if _, err := BuildCopyArgs(req, CopyOptions{Map: MapAll, AudioIndex: -1}); err == nil {
		t.Fatal("expected error for non-positive window")
	}
}

func TestDefaultCopyOutput(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "end window",
			req:  Request{Input: "/media/My Movie.mkv", Start: "00:10:00", End: "00:10:30"},
			want: "/media/My Movie_clip_00-10-00_to_00-10-30.mkv",
		},
		{
			name: "duration window",
			req:  Request{Input: "movie.mp4", Start: "600", Duration: "30"},
			want: "movie_clip_600_d30.mp4",
		},
		{
			name: "no extension falls back to mkv",
			req:  Request{Input: "recording", Start: "0", Duration: "5"},
			want: "recording_clip_0_d5.mkv",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultCopyOutput(tt.req); got != tt.want {
				t.Fatalf("DefaultCopyOutput = %q, want %q", got, tt.want)
			}
		})
	}
}
