/*
 Caretaker, a scheduler for ephemeral game servers.
 Copyright (C) 2025 Yannic Rieger <oss@76k.io>

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package caretaker

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// scheduleParser accepts both 5-field cron expressions and the 6-field
// variant with a leading seconds column.
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule is the pair of recurring start and stop times the
// controller evaluates every tick. next occurrences are recomputed
// from scratch each time, nothing is cached across ticks.
type Schedule struct {
	start cron.Schedule
	stop  cron.Schedule
}

func ParseSchedule(start, stop string) (Schedule, error) {
	s, err := scheduleParser.Parse(start)
	if err != nil {
		return Schedule{}, fmt.Errorf("parse start schedule %q: %w", start, err)
	}
	e, err := scheduleParser.Parse(stop)
	if err != nil {
		return Schedule{}, fmt.Errorf("parse stop schedule %q: %w", stop, err)
	}
	return Schedule{start: s, stop: e}, nil
}

func (s Schedule) NextStart(now time.Time) time.Time {
	return s.start.Next(now)
}

func (s Schedule) NextStop(now time.Time) time.Time {
	return s.stop.Next(now)
}

// InRunWindow is true iff the next start occurrence is farther away
// than the next stop occurrence, meaning we are past a start boundary
// and before the following stop boundary.
func (s Schedule) InRunWindow(now time.Time) bool {
	return s.NextStart(now).After(s.NextStop(now))
}
