package options

// Options collects every command-line setting the tool understands.
type Options struct {
	Help *bool

	// Effect chain, e.g. "colorgrade:contrast=1.3|blur:radius=6|vignette".
	Effects *string

	// InputFile is a PNG or JPEG to run the chain over. Empty renders the
	// built-in animated test pattern.
	InputFile *string

	Width        *int
	Height       *int
	RenderWidth  *int
	RenderHeight *int

	// Recording
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	Bitrate    *string
	FFMPEGPath *string
	NumPBOs    *int

	// Surface
	Headless *bool
	Samples  *int

	Profile *bool

	// Animate fades the chain in over the first two seconds.
	Animate *bool
}
