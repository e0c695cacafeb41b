package report

import (
	"database/sql"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

const (
	ReportPath  = "/report/conversations"
	ProfilePath = "/user/view.php"

	// dateLayout is DD/MM/YYYY hh:mm:ss on a 12-hour clock.
	dateLayout = "02/01/2006 03:04:05"
)

func buildURL(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

func profileURL(userID int) string {
	return buildURL(ProfilePath, url.Values{"id": {strconv.Itoa(userID)}})
}

// reportURL links back into the report, keeping the course when one is set.
func reportURL(courseID *int, conversationID *int) string {
	params := url.Values{}
	if conversationID != nil {
		params.Set("conversation", strconv.Itoa(*conversationID))
	}
	if courseID != nil {
		params.Set("course", strconv.Itoa(*courseID))
	}
	return buildURL(ReportPath, params)
}

// link builds an anchor. text must already be HTML-safe.
func link(href, text string) string {
	return `<a href="` + templ.EscapeString(href) + `">` + text + `</a>`
}

func escape(s string) string {
	return templ.EscapeString(s)
}

func formatTime(ts int64, loc *time.Location) string {
	return time.Unix(ts, 0).In(loc).Format(dateLayout)
}

func formatNullTime(ts sql.NullInt64, loc *time.Location) string {
	if !ts.Valid {
		return ""
	}
	return formatTime(ts.Int64, loc)
}

func nullString(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return escape(s.String)
}

func nullInt(n sql.NullInt64) string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatInt(n.Int64, 10)
}

// typeLabel maps known conversation types to their label; unknown codes pass through.
func typeLabel(t int, tr Translator) string {
	switch t {
	case TypeIndividual:
		return escape(tr.Translate("individual"))
	case TypeGroup:
		return escape(tr.Translate("group"))
	case TypeSelf:
		return escape(tr.Translate("self"))
	default:
		return strconv.Itoa(t)
	}
}
