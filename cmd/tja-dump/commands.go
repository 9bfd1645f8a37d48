package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/urfave/cli/v2"

	"github.com/simonhull/tjachart"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print headers and per-course statistics",
		ArgsUsage: "<chart.tja>",
		Action: func(c *cli.Context) error {
			path, err := requireArg(c, "chart.tja")
			if err != nil {
				return err
			}
			opts, err := parserOptions(c)
			if err != nil {
				return err
			}

			song, err := tjachart.OpenContext(c.Context, path, opts...)
			if err != nil {
				return err
			}

			size := "?"
			if fi, err := os.Stat(path); err == nil {
				size = humanize.Bytes(uint64(fi.Size()))
			}

			fmt.Printf("File:     %s (%s)\n", song.Path, size)
			fmt.Printf("Title:    %s\n", song.Title)
			if song.Subtitle != "" {
				fmt.Printf("Subtitle: %s\n", song.Subtitle)
			}
			fmt.Printf("BPM:      %s\n", humanize.Ftoa(song.BPM))
			fmt.Printf("Audio:    %s\n", song.AudioFilename)
			if a := song.Audio; a != nil {
				fmt.Printf("          %s, %s\n", a, durafmt.Parse(a.Duration.Round(time.Second)).LimitFirstN(2))
			}
			if song.Offset != 0 {
				fmt.Printf("Offset:   %ss\n", humanize.Ftoa(song.Offset))
			}

			fmt.Println("\nCourses:")
			fmt.Println("────────")
			for course, d := range song.Courses() {
				fmt.Printf("%-7s ★%-2d %5s notes  %s",
					course, d.StarLevel, humanize.Comma(int64(len(d.Notes))), formatSeconds(d.Duration()))
				if d.Player2 != nil {
					fmt.Printf("  (double play, P2 %s notes)", humanize.Comma(int64(len(d.Player2.Notes))))
				}
				fmt.Println()
			}

			if len(song.Warnings) > 0 {
				fmt.Println("\nWarnings:")
				fmt.Println("─────────")
				for _, w := range song.Warnings {
					fmt.Printf("  • %s\n", w)
				}
			}
			return nil
		},
	}
}

func notesCommand() *cli.Command {
	return &cli.Command{
		Name:      "notes",
		Usage:     "list the timed notes and barlines of one course",
		ArgsUsage: "<chart.tja>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "course",
				Aliases: []string{"c"},
				Value:   "oni",
				Usage:   "course name or number (easy, normal, hard, oni, edit)",
			},
			&cli.BoolFlag{
				Name:  "p2",
				Usage: "show the P2 side of a double-play course",
			},
			&cli.BoolFlag{
				Name:  "barlines",
				Usage: "include barlines",
			},
		},
		Action: func(c *cli.Context) error {
			path, err := requireArg(c, "chart.tja")
			if err != nil {
				return err
			}
			course, err := tjachart.ParseCourse(c.String("course"))
			if err != nil {
				return err
			}
			opts, err := parserOptions(c)
			if err != nil {
				return err
			}

			song, err := tjachart.OpenContext(c.Context, path, opts...)
			if err != nil {
				return err
			}

			d := song.Difficulty(course)
			if d == nil {
				return cli.Exit(fmt.Sprintf("%s has no %s course", path, course), 1)
			}
			track := &d.Track
			if c.Bool("p2") {
				if d.Player2 == nil {
					return cli.Exit(fmt.Sprintf("%s course is not double play", course), 1)
				}
				track = d.Player2
			}

			printTrack(track, c.Bool("barlines"))
			return nil
		},
	}
}

// printTrack merges notes and barlines in time order.
func printTrack(t *tjachart.Track, barlines bool) {
	bi := 0
	for _, n := range t.Notes {
		for barlines && bi < len(t.Barlines) && t.Barlines[bi].Time <= n.Time {
			printBarline(t.Barlines[bi])
			bi++
		}

		fmt.Printf("%10.4f  %-12s", n.Time, n.Type)
		if n.ScrollSpeed != 1 {
			fmt.Printf(" scroll=%s", humanize.Ftoa(n.ScrollSpeed))
		}
		if n.Gogo {
			fmt.Print(" gogo")
		}
		if n.Hits > 0 {
			fmt.Printf(" hits=%d", n.Hits)
		}
		fmt.Println()
	}
	for barlines && bi < len(t.Barlines) {
		printBarline(t.Barlines[bi])
		bi++
	}
}

func printBarline(b tjachart.TimedBarline) {
	vis := ""
	if !b.Visible {
		vis = " (hidden)"
	}
	fmt.Printf("%10.4f  ────────────%s\n", b.Time, vis)
}

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "load every song folder under a directory",
		ArgsUsage: "<songs-dir>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "charts to parse in parallel (default: number of CPUs)",
			},
		},
		Action: func(c *cli.Context) error {
			dir, err := requireArg(c, "songs-dir")
			if err != nil {
				return err
			}
			opts, err := parserOptions(c)
			if err != nil {
				return err
			}
			if n := c.Int("jobs"); n > 0 {
				opts = append(opts, tjachart.WithConcurrency(n))
			}

			start := time.Now()
			lib, err := tjachart.ScanLibrary(c.Context, dir, opts...)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			var notes int
			var length float64
			for _, s := range lib.Songs {
				fmt.Printf("%s\n", s.Path)
				fmt.Printf("    %s  %s BPM  [", s.Title, humanize.Ftoa(s.BPM))
				sep := ""
				for course, d := range s.Courses() {
					fmt.Printf("%s%s ★%d", sep, course, d.StarLevel)
					sep = ", "
					notes += len(d.Notes)
					length += d.Duration()
				}
				fmt.Println("]")
			}

			if len(lib.Failures) > 0 {
				fmt.Println("\nFailures:")
				for _, f := range lib.Failures {
					fmt.Printf("  • %s\n", f)
				}
			}

			fmt.Printf("\n%s songs, %s failures, %s notes, %s of charts, scanned in %s\n",
				humanize.Comma(int64(len(lib.Songs))),
				humanize.Comma(int64(len(lib.Failures))),
				humanize.Comma(int64(notes)),
				formatSeconds(length),
				durafmt.Parse(elapsed).LimitFirstN(2))
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print build information",
		Action: func(c *cli.Context) error {
			v := tjachart.GetVersionInfo()
			fmt.Fprintf(c.App.Writer, "tja-dump %s\n", v.Version)
			fmt.Fprintf(c.App.Writer, "  commit: %s\n", v.GitCommit)
			fmt.Fprintf(c.App.Writer, "  built:  %s\n", v.BuildTime)
			fmt.Fprintf(c.App.Writer, "  go:     %s\n", v.GoVersion)
			return nil
		},
	}
}

func formatSeconds(s float64) string {
	d := time.Duration(s * float64(time.Second)).Round(time.Second)
	if d == 0 {
		return "0 seconds"
	}
	return durafmt.Parse(d).LimitFirstN(2).String()
}
