// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package daily

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/zintix-labs/romlab/errs"
)

const (
	minYear = 1
	maxYear = 9999
)

// Date 是一個日曆日，不帶時分秒與時區。
//
// 零值不是合法日期：所有接受 Date 的操作都會回傳 InvalidArgument，而不是默默換成今天。
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate 建立並檢查日期。
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Valid(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// FromTime 取 t 在其自身時區下的日曆日；時分秒被捨棄。
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate 接受 "2006-01-02" 與不補零的 "2006-1-2"。
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, errs.InvalidArgf("date %q: want YYYY-MM-DD", s)
	}
	nums := [3]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || p == "" || p[0] == '+' {
			return Date{}, errs.InvalidArgf("date %q: %q is not a number", s, p)
		}
		nums[i] = n
	}
	return NewDate(nums[0], time.Month(nums[1]), nums[2])
}

// Valid 檢查年份 1..9999、月份 1..12、日期落在該月內。
func (d Date) Valid() error {
	if d.Year < minYear || d.Year > maxYear {
		return errs.InvalidArgf("year %d out of range [%d,%d]", d.Year, minYear, maxYear)
	}
	if d.Month < time.January || d.Month > time.December {
		return errs.InvalidArgf("month %d out of range [1,12]", int(d.Month))
	}
	if d.Day < 1 || d.Day > daysIn(d.Year, d.Month) {
		return errs.InvalidArgf("day %d out of range for %04d-%02d", d.Day, d.Year, int(d.Month))
	}
	return nil
}

// Seed 回傳日期種子字串，例如 "2024-3-7"。
//
// 不補零；年月日之間以 '-' 分隔，因此在 1..9999 年範圍內是單射。
func (d Date) Seed() string {
	return fmt.Sprintf("%d-%d-%d", d.Year, int(d.Month), d.Day)
}

// String 回傳 ISO 格式 "2024-03-07"。
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time 回傳該日在 loc 下的零點。loc 為 nil 時使用 UTC。
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays 以日曆計算前後 n 天（以 UTC 計算，避免夏令時間造成跳日）。
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time(time.UTC).AddDate(0, 0, n))
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func daysIn(year int, month time.Month) int {
	// 下個月第 0 天即本月最後一天
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
