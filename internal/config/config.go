package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-GymTrack/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go GymTrack"
	BackendName       = "GymTrack Backend"
	AppID             = "com.github.tartampluch.go-gymtrack"
	KeyringService    = "com.github.tartampluch.go-gymtrack"
	KeyringTokenPref  = "token:" // Keyring account prefix for bearer tokens
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	LogFilePrevSuffix = ".prev"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagBackend      = "backend"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to the backend YAML configuration file"
	FlagDescBackend  = "Backend base URL, saved to preferences when set"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Calendar & Aggregation Defaults
// -----------------------------------------------------------------------------

const (
	// DefaultWeekStart is shared by every grid, chart and roster computation.
	DefaultWeekStart = time.Sunday

	// DefaultChartWeeks covers roughly six months of weekly buckets.
	DefaultChartWeeks = 26

	// DefaultChartMonths is the six-month window used by the history chart.
	DefaultChartMonths = 6

	DaysPerWeek = 7

	// DateLayout is the wire and storage format of a calendar day.
	DateLayout = "2006-01-02"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600
	MainWindowWidth     = 720
	MainWindowHeight    = 640

	// Preference Keys
	PrefBackendURL  = "backend_url"
	PrefUsername    = "username"
	PrefMemberID    = "member_id"
	PrefLanguage    = "language"
	PrefInterval    = "refresh_interval_min"
	PrefServerPort  = "server_port"
	PrefRosterMode  = "roster_mode"
	PrefVCardPath   = "vcard_path"
	PrefWeekStart   = "week_start"
	PrefChartWeeks  = "chart_weeks"
	PrefChartMonths = "chart_months"
	PrefChartUnit   = "chart_unit"
	PrefLastSquad   = "last_squad"
	PrefLastRun     = "last_run_version"
	PrefDisplayName = "display_name"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Calendar, Chart & Squad Constants
// -----------------------------------------------------------------------------

const (
	CalendarCellMinWidth = 44
	ChartBarWidth        = 14
	ChartMaxHeight       = 120
	ChartMinBarHeight    = 2

	// Squad table columns: name, seven days, total.
	SquadColName  = 0
	SquadColFirst = 1
	SquadColTotal = 8
	SquadColCount = 9

	ColWidthMember = 180
	ColWidthDay    = 48
	ColWidthTotal  = 64

	// Display markers
	MarkVisited     = "✔"
	MarkMissed      = "·"
	MarkChampion    = "👑 "
	MarkToday       = "•"
	CellPlaceholder = "Cell Content"

	LogMsgOpenWin = "Opening main window"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinMain        = "win_main_title"
	TKeyMenuOpen       = "menu_open"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyMenuSettings   = "menu_settings"
	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0
	TKeyNotifStart     = "notif_sync_start"
	TKeyNotifSuccess   = "notif_sync_success"
	TKeyNotifError     = "notif_err_sync"
	TKeyNotifConfirmed = "notif_visit_confirmed"
	TKeyNotifRemoved   = "notif_visit_removed"
	TKeyNotifFuture    = "notif_err_future"
	TKeyNotifInvalid   = "notif_err_invalid"
	TKeyNotifNetwork   = "notif_err_network"
	TKeyNotifAuth      = "notif_err_auth"
	TKeyNotifSignedIn  = "notif_signed_in" // Requires Name
	TKeyNotifSquadNew  = "notif_squad_created"
	TKeyNotifJoined    = "notif_squad_joined"
	TKeyModeRemote     = "mode_remote"
	TKeyModeLocal      = "mode_local"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblMinutes     = "lbl_minutes_suffix"
	TKeyLblRefresh     = "lbl_refresh_interval"
	TKeyHelpInterval   = "help_interval"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblWeekStart   = "lbl_week_start"
	TKeyLblChartWeeks  = "lbl_chart_weeks"
	TKeyUnitWeeks      = "unit_weeks"
	TKeyUnitMonths     = "unit_months"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"
	TKeyBtnBrowse      = "btn_browse"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_backend_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblAccount     = "lbl_account"
	TKeyLblRoster      = "lbl_roster_source"
	TKeyChkSignUp      = "chk_sign_up"

	// Calendar tab
	TKeyTabPersonal    = "tab_personal"
	TKeyBtnConfirm     = "btn_confirm_visit"
	TKeyBtnRemove      = "btn_remove_visit"
	TKeyThisWeek       = "lbl_this_week" // Requires Count
	TKeyChartTitle     = "lbl_chart_title"
	TKeyFormatMonth    = "format_month" // Requires Month, Year
	TKeyMonthPrefix    = "month_"       // month_1 .. month_12
	TKeyWeekdayPrefix  = "weekday_"     // weekday_0 (Sunday) .. weekday_6
	TKeyNoDateSelected = "lbl_no_date_selected"

	// Squad tab
	TKeyTabSquads     = "tab_squads"
	TKeyLblSquad      = "lbl_squad"
	TKeyNoSquads      = "lbl_no_squads"
	TKeyEmptyRoster   = "lbl_empty_roster"
	TKeyColMember     = "col_member"
	TKeyColTotal      = "col_total"
	TKeyLblChampion   = "lbl_champion" // Requires Name, Count
	TKeyNoChampion    = "lbl_no_champion"
	TKeyWinAttendees  = "win_attendees" // Requires Date
	TKeyNoAttendees   = "lbl_no_attendees"
	TKeyBtnNewSquad   = "btn_new_squad"
	TKeyBtnJoinSquad  = "btn_join_squad"
	TKeyLblSquadName  = "lbl_squad_name"
	TKeyLblSquadID    = "lbl_squad_id"
	TKeyFormatWeek    = "format_week" // Requires Start, End
	TKeyEvtSummary    = "event_summary"
	TKeyFormatDate    = "format_date_short" // Date format pattern (e.g., "2006-01-02")

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	RosterModeRemote  = "remote"
	RosterModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultBackendURL = "http://127.0.0.1:8080"
	DefaultRefreshMin = 15
	DefaultLanguage   = "en"
	UIDSalt           = "go-gymtrack-v1-" // Salt for deterministic UID generation
	DisabledInterval  = 0
	DefaultRetries    = 2
	RetryBackoff      = 250 * time.Millisecond
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go GymTrack//Visits//EN"
	ICalCalName = "Gym visits"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gogymtrack"
	ICalTransp  = "TRANSPARENT"

	// iCal/vCard Fields
	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTEnd      = "DTEND"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropTransp     = "TRANSP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardFN         = "FN"
	VCardN          = "N"
	VCardUID        = "UID"
	VCardCategories = "CATEGORIES"

	CategorySeparator = ","

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Limits
	MinPort = 1
	MaxPort = 65535

	MinChartWeeks  = 4
	MaxChartWeeks  = 104
	MinChartMonths = 1
	MaxChartMonths = 24

	ChartUnitWeeks  = "weeks"
	ChartUnitMonths = "months"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	MaxErrorBodySize    = 4 * 1024
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"
	AuthScheme          = "Bearer"
)

// -----------------------------------------------------------------------------
// Routes (feed server and REST backend)
// -----------------------------------------------------------------------------

const (
	RouteCalendar = "/calendar.ics"
	RouteSummary  = "/summary.json"
	RouteHealth   = "/healthz"

	APIPrefix        = "/api"
	RouteSignUp      = "/users/create"
	RouteSignIn      = "/users/signIn"
	RouteUserVisits  = "/users/:id/visits"
	RouteUserSquads  = "/users/:id/squads"
	RouteGroups      = "/groups"
	RouteGroupMember = "/groups/:id/members"
	RouteGroupVisits = "/groups/:id/visits"
	RouteVisits      = "/visits"

	// Client-side path templates, expanded with url.PathEscape'd ids.
	PathUserVisits   = "/users/%s/visits"
	PathUserSquads   = "/users/%s/squads"
	PathGroupMembers = "/groups/%s/members"
	PathGroupVisits  = "/groups/%s/visits"

	ParamID     = "id"
	QueryStart  = "start"
	QueryEnd    = "end"
	QueryIDs    = "ids"
	IDSeparator = ","
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderAccept          = "Accept"
	HeaderAuthorization   = "Authorization"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderRequestID       = "X-Request-ID"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Backend (REST reference server)
// -----------------------------------------------------------------------------

const (
	BackendModeDev      = "dev"
	BackendModeRelease  = "release"
	DefaultBackendAddr  = ":8080"
	DefaultDBPath       = "gymtrack.db"
	DefaultTokenTTL     = 24 * time.Hour
	DefaultConfigPath   = "config/config.yaml"
	SQLiteDriver        = "sqlite"
	SQLitePragmas       = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	MinPasswordLength   = 6
	MaxNameLength       = 64
	MaxVisitIDs         = 200 // ids per GET /visits call
	ClaimSubject        = "sub"
	ClaimName           = "name"
	ClaimExpiry         = "exp"
	ClaimIssuedAt       = "iat"
	CtxUserIDKey        = "user_id"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL"
	EnvJWTSecret        = "GYMTRACK_JWT_SECRET"

	// MaxZoneOffset is the furthest any timezone runs ahead of UTC. A visit
	// date later than today there has not started anywhere yet.
	MaxZoneOffset = 14 * time.Hour
)

// DevCORSOrigins lists the origins allowed when the backend runs in dev mode.
var DevCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrBackendURLEmpty  = "configuration error: backend URL is empty"
	ErrVCardPathEmpty   = "configuration error: vCard path is empty"
	ErrMemberUnknown    = "configuration error: member is not signed in"
	ErrModeUnsupport    = "configuration error: unsupported roster mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrBuildRequest     = "failed to create request"
	ErrEncodeBody       = "failed to encode request body"
	ErrDecodeBody       = "failed to decode response body"
	ErrNetworkFetch     = "network error during request"
	ErrUnexpectedStatus = "server returned unexpected status"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardOpen        = "failed to open vCard file"
	ErrVCardFetch       = "failed to download vCard roster"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrSummaryEncode    = "failed to encode summary"
	ErrDateParse        = "unable to parse date"
	ErrFutureVisit      = "cannot confirm a visit on a future date"
	ErrStaleFetch       = "result discarded: target changed while fetching"
	ErrNoSquadSupport   = "facade does not manage squads"
	ErrNoAuthSupport    = "facade does not support sign-in"
	ErrTokenMissing     = "no bearer token stored"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
	ErrConfigRead       = "failed to read configuration file"
	ErrConfigParse      = "failed to parse configuration file"
	ErrConfigMode       = "configuration error: mode must be dev or release"
	ErrJWTSecret        = "configuration error: jwt secret is empty"
	ErrDBOpen           = "failed to open database"
	ErrDBPing           = "database unreachable"
	ErrDBInit           = "failed to initialize schema"
	ErrInvalidJSON      = "invalid json or missing required fields"
	ErrInvalidDate      = "date must be formatted as YYYY-MM-DD"
	ErrInvalidRange     = "start must not be after end"
	ErrInvalidIDs       = "ids must list between 1 and 200 members"
	ErrBadCredentials   = "invalid username or password"
	ErrUserExists       = "username already taken"
	ErrUserNotFound     = "user not found"
	ErrGroupNotFound    = "group not found"
	ErrPasswordShort    = "password is too short"
	ErrNameInvalid      = "name is empty or too long"
	ErrForbiddenUser    = "token does not grant access to this user"
	ErrAuthHeader       = "missing or malformed Authorization header"
	ErrTokenInvalid     = "invalid or expired token"
	ErrInternal         = "internal error"
)

// Error kinds surfaced by the remote facade.
const (
	ErrKindNetwork    = "network error"
	ErrKindValidation = "validation error"
	ErrKindNotFound   = "not found"
	ErrKindAuth       = "authentication error"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgOK           = "ok"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary     = "Gym visit"
	FallbackTrayError   = "Go GymTrack: Sync Error"
	FallbackTrayDefault = "Go GymTrack (%d this week)"
	FallbackTrayLabel   = "Go GymTrack"
	FallbackName        = "Unknown"
	FallbackThisWeek    = "This week: %d"
	FallbackChampion    = "%s (%d)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleSyncError    = "Sync Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgSyncSuccess    = "Synchronization completed successfully."
	MsgSyncStarted    = "Synchronization started..."
	MsgSyncFailed     = "Synchronization failed. Check logs."
	MsgSyncReq        = "Sync requested"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgUpdateSync     = "Updating sync interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgRosterFetch    = "Downloading vCard roster"
	MsgRosterStatus   = "Roster server returned error status"
	MsgGenSuccess     = "Calendar generation successful"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Feed cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgBackendFlag    = "Backend URL set from command line"
	MsgRequest        = "Sending request"
	MsgRetry          = "Retrying request"
	MsgRequestFailed  = "Request failed"
	MsgHydrated       = "Visit store hydrated"
	MsgVisitConfirmed = "Visit confirmed"
	MsgVisitRemoved   = "Visit removed"
	MsgRollback       = "Remote mutation failed, rolling back"
	MsgStaleDiscarded = "Discarding stale squad fetch"
	MsgSquadLoaded    = "Squad roster loaded"
	MsgSignedIn       = "Signed in"
	MsgReauth         = "Token rejected, signing in again"
	MsgRosterLoaded   = "Local roster loaded"
	MsgBackendStart   = "Backend starting"
	MsgHTTPRequest    = "HTTP request"
	MsgDBReady        = "Database initialized"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyStatus    = "status_code"
	LogKeyLength    = "content_length"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyMember    = "member_id"
	LogKeySquad     = "squad_id"
	LogKeyDate      = "date"
	LogKeyAttempt   = "attempt"
	LogKeyRequestID = "request_id"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyVisits    = "visits"
	LogKeyMembers   = "members"
	LogKeyName      = "name"
	LogKeyDuration  = "duration_ms"
	LogKeyClientIP  = "client_ip"
	LogKeyAddr      = "addr"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompUISquad = "ui_squads"
	CompEngine  = "engine"
	CompExport  = "export"
	CompSession = "session"
	CompServer  = "server"
	CompRemote  = "remote"
	CompRoster  = "roster"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
	CompBackend = "backend"
	CompStore   = "store"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
