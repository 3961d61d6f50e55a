// Package calendar renders agenda events as an iCalendar feed so agents can
// subscribe from their own calendar apps.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/laxautomacoes/crmLAX-sub001/internal/domain"
)

const productID = "-//crmlax//EN"

// WriteFeed encodes the events as a VCALENDAR stream
func WriteFeed(w io.Writer, calendarName string, events []*domain.CalendarEvent) error {
	// go-ical refuses to encode a calendar with no components, but an
	// empty agenda is still a valid subscription target.
	if len(events) == 0 {
		return writeEmptyFeed(w, calendarName)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	if calendarName != "" {
		cal.Props.SetText("X-WR-CALNAME", calendarName)
	}

	for _, event := range events {
		cal.Children = append(cal.Children, toVEvent(event))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar feed: %w", err)
	}
	return nil
}

func writeEmptyFeed(w io.Writer, calendarName string) error {
	lines := []string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:" + productID}
	if calendarName != "" {
		lines = append(lines, "X-WR-CALNAME;VALUE=TEXT:"+calendarName)
	}
	lines = append(lines, "END:VCALENDAR")

	for _, line := range lines {
		if _, err := io.WriteString(w, line+"\r\n"); err != nil {
			return fmt.Errorf("failed to encode calendar feed: %w", err)
		}
	}
	return nil
}

// toVEvent converts a domain.CalendarEvent to an ical.Component (VEvent)
func toVEvent(event *domain.CalendarEvent) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, event.ID)
	ve.Props.SetText(ical.PropSummary, summary(event))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, event.UpdatedAt.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, event.StartTime)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, event.EndTime)

	if event.Description != "" {
		ve.Props.SetText(ical.PropDescription, event.Description)
	}
	return ve
}

// summary prefixes the title with the event category so entries are
// distinguishable at a glance in external calendar apps
func summary(event *domain.CalendarEvent) string {
	label := strings.ReplaceAll(event.EventType, "_", " ")
	if label == "" || label == domain.EventTypeOther {
		return event.Title
	}
	return fmt.Sprintf("[%s] %s", label, event.Title)
}

// FeedFilename is the suggested download name for a tenant's feed
func FeedFilename(slug string) string {
	if slug == "" {
		slug = "agenda"
	}
	return fmt.Sprintf("%s-%s.ics", slug, time.Now().Format("20060102"))
}
