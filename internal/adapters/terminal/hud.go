package terminal

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us") //nolint:gochecknoglobals // parsed once

// FormatScore renders a score with thousands separators.
func FormatScore(score int) string {
	return humanize.Comma(int64(score))
}

// FormatSongTime renders song seconds as at most two units, e.g. "1 m 5 s".
func FormatSongTime(seconds float64) string {
	if seconds < 1 {
		return "0 s"
	}
	d := time.Duration(seconds * float64(time.Second)).Truncate(time.Second)
	return durafmt.Parse(d).LimitFirstN(2).Format(shortUnits)
}

func hudLine(score, combo int, now float64, length time.Duration, playing bool, flash string) string {
	clock := FormatSongTime(now)
	if length > 0 {
		clock += " / " + FormatSongTime(length.Seconds())
	}
	state := ""
	if !playing {
		state = "  [paused]"
	}
	line := fmt.Sprintf("Score %s  Combo %d  %s%s", FormatScore(score), combo, clock, state)
	if flash != "" {
		line += "  " + flash
	}
	return line
}
