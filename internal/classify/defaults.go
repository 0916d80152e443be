package classify

// DefaultUnwantedPatterns matches release-group junk and desktop metadata
// commonly left behind in bulk movie folders.
var DefaultUnwantedPatterns = []string{
	`www\.YTS\.MX\.jpg$`,
	`www\.YTS\.AM\.jpg$`,
	`www\.YTS\.LT\.jpg$`,
	`WWW\.YTS\.[A-Z]+\.jpg$`,
	`WWW\.YIFY-TORRENTS\.COM\.jpg$`,
	`YIFYStatus\.com\.txt$`,
	`YTSProxies\.com\.txt$`,
	`YTSYifyUP.*\(TOR\)\.txt$`,
	`\.DS_Store$`,
	`Thumbs\.db$`,
	`desktop\.ini$`,
	`\.tmp$`,
	`\.temp$`,
	`\.log$`,
	`\.cache$`,
	`\.bak$`,
	`\.backup$`,
}

// DefaultSubtitleExtensions covers the subtitle formats the engine
// recognizes. Some subtitle files ship as plain .txt.
var DefaultSubtitleExtensions = []string{
	".srt", ".sub", ".vtt", ".ass", ".ssa",
	".idx", ".sup", ".scc", ".ttml", ".dfxp",
	".mcc", ".stl", ".sbv", ".smi", ".txt",
}

// DefaultMovieExtensions covers the container formats treated as movies.
var DefaultMovieExtensions = []string{
	".mp4", ".mkv", ".avi", ".mov", ".wmv",
	".flv", ".webm", ".m4v", ".mpg", ".mpeg",
	".m2v", ".3gp", ".3g2", ".ts", ".mts",
	".m2ts", ".vob", ".ogv", ".rm", ".rmvb",
	".divx",
}
