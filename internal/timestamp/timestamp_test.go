package timestamp

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTimestamp(t *testing.T) {
	Convey("Given the timestamp package", t, func() {
		Convey("Generate", func() {
			Convey("When encoding a known instant", func() {
				instant := time.Date(2024, 11, 25, 14, 30, 22, 0, time.Local)

				Convey("It should produce the fixed-width form", func() {
					So(Generate(instant), ShouldEqual, "20241125-143022")
				})
			})

			Convey("When encoding the same instant twice", func() {
				instant := time.Date(2024, 1, 2, 3, 4, 5, 999_000_000, time.Local)

				Convey("It should be deterministic and truncate to seconds", func() {
					So(Generate(instant), ShouldEqual, Generate(instant))
					So(Generate(instant), ShouldEqual, "20240102-030405")
				})
			})
		})

		Convey("Parse", func() {
			Convey("When round-tripping a generated identifier", func() {
				instant := time.Date(2024, 11, 25, 14, 30, 22, 0, time.Local)
				p := Parse(Generate(instant))

				Convey("It should decode back to the same calendar fields", func() {
					So(p.IsValid, ShouldBeTrue)
					So(p.Year, ShouldEqual, 2024)
					So(p.Month, ShouldEqual, 11)
					So(p.Day, ShouldEqual, 25)
					So(p.Hour, ShouldEqual, 14)
					So(p.Minute, ShouldEqual, 30)
					So(p.Second, ShouldEqual, 22)
					So(p.Time.Equal(instant), ShouldBeTrue)
				})
			})

			Convey("When parsing strings with the wrong shape", func() {
				for _, s := range []string{"", "20241125", "20241125143022", "2024-11-25 14:30:22", "20241125-14302", "20241125-1430222", "2024112a-143022"} {
					p := Parse(s)
					So(p.IsValid, ShouldBeFalse)
					So(len(p.Reasons), ShouldBeGreaterThan, 0)
				}
			})

			Convey("When parsing out-of-range fields", func() {
				Convey("Month 13 should be invalid", func() {
					So(Parse("20241325-143022").IsValid, ShouldBeFalse)
				})
				Convey("Hour 25 should be invalid", func() {
					So(Parse("20241125-256022").IsValid, ShouldBeFalse)
				})
				Convey("Year 1999 should be invalid", func() {
					So(Parse("19991125-143022").IsValid, ShouldBeFalse)
				})
				Convey("Minute 60 should be invalid", func() {
					So(Parse("20241125-146022").IsValid, ShouldBeFalse)
				})
			})

			Convey("When parsing an impossible calendar date", func() {
				p := Parse("20241131-000000")

				Convey("The round-trip check should reject November 31", func() {
					So(p.IsValid, ShouldBeFalse)
					So(p.Reasons[0], ShouldContainSubstring, "not a real calendar date")
				})
			})

			Convey("When parsing February 29 of a leap year", func() {
				So(Parse("20240229-120000").IsValid, ShouldBeTrue)
				So(Parse("20230229-120000").IsValid, ShouldBeFalse)
			})
		})

		Convey("IsWellFormed", func() {
			Convey("It should accept the lexical shape without calendar checks", func() {
				So(IsWellFormed("20241125-143022"), ShouldBeTrue)
				So(IsWellFormed("99999999-999999"), ShouldBeTrue)
				So(IsWellFormed("20241125_143022"), ShouldBeFalse)
				So(IsWellFormed("20241125-14302"), ShouldBeFalse)
			})
		})

		Convey("Compare", func() {
			Convey("When comparing ordered identifiers", func() {
				c, err := Compare("20241125-143022", "20241125-143023")
				So(err, ShouldBeNil)
				So(c, ShouldEqual, -1)

				c, err = Compare("20241125-143023", "20241125-143022")
				So(err, ShouldBeNil)
				So(c, ShouldEqual, 1)

				c, err = Compare("20241125-143022", "20241125-143022")
				So(err, ShouldBeNil)
				So(c, ShouldEqual, 0)
			})

			Convey("When either side is invalid", func() {
				_, err := Compare("garbage", "20241125-143022")
				So(err, ShouldNotBeNil)

				_, err = Compare("20241125-143022", "20241325-143022")
				So(err, ShouldNotBeNil)
			})
		})

		Convey("SortAscending", func() {
			Convey("When sorting a shuffled list", func() {
				sorted, err := SortAscending([]string{"20241125-143022", "20241125-143020", "20241125-143025"})

				Convey("It should order oldest first", func() {
					So(err, ShouldBeNil)
					So(sorted, ShouldResemble, []string{"20241125-143020", "20241125-143022", "20241125-143025"})
				})
			})

			Convey("When the list contains an invalid identifier", func() {
				_, err := SortAscending([]string{"20241125-143022", "nope"})
				So(err, ShouldNotBeNil)
			})
		})

		Convey("MostRecent and Oldest", func() {
			list := []string{"20241125-143022", "20231125-143022", "20251125-143022"}

			Convey("They should pick the chronological extremes", func() {
				newest, ok, err := MostRecent(list)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(newest, ShouldEqual, "20251125-143022")

				oldest, ok, err := Oldest(list)
				So(err, ShouldBeNil)
				So(ok, ShouldBeTrue)
				So(oldest, ShouldEqual, "20231125-143022")
			})

			Convey("They should report no value for an empty list", func() {
				_, ok, err := MostRecent(nil)
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)

				_, ok, err = Oldest(nil)
				So(err, ShouldBeNil)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("Format", func() {
			Convey("When rendering a valid identifier", func() {
				So(Format("20241125-143022", FormatOptions{ShowSeconds: true}), ShouldEqual, "2024-11-25 14:30:22")
				So(Format("20241125-143022", FormatOptions{}), ShouldEqual, "2024-11-25 14:30")
				So(Format("20241125-143022", FormatOptions{TwelveHour: true}), ShouldEqual, "2024-11-25 2:30 PM")
				So(Format("20241125-143022", FormatOptions{TwelveHour: true, ShowSeconds: true}), ShouldEqual, "2024-11-25 2:30:22 PM")
			})

			Convey("When rendering an invalid identifier", func() {
				Convey("It should mark it instead of failing", func() {
					So(Format("junk", FormatOptions{}), ShouldEqual, "invalid timestamp (junk)")
				})
			})
		})
	})
}
