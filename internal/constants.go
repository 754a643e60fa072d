package internal

type uiTheme struct {
	PrimaryColor   string
	SecondaryColor string
	ErrorColor     string
	TertiaryColor  string
	SuccessColor   string
}

var Theme = uiTheme{
	PrimaryColor:   "75",      // Brighter blue
	SecondaryColor: "#ccc",    // Section headings and paths
	ErrorColor:     "#FF5F5F", // Red for errors
	TertiaryColor:  "#666666", // Hints and placeholders
	SuccessColor:   "#5FD787", // Saved and written notices
}
