package htmx

// Response headers.
const (
	HeaderHXPushURL          = "HX-Push-Url"
	HeaderHXRedirect         = "HX-Redirect"
	HeaderHXRefresh          = "HX-Refresh"
	HeaderHXReplaceURL       = "HX-Replace-Url"
	HeaderHXReswap           = "HX-Reswap"
	HeaderHXRetarget         = "HX-Retarget"
	HeaderHXTrigger          = "HX-Trigger"
	HeaderHXTriggerAfterSwap = "HX-Trigger-After-Swap"
)

// Request headers.
const (
	HeaderHXRequest               = "HX-Request"
	HeaderHXBoosted               = "HX-Boosted"
	HeaderHXCurrentURL            = "HX-Current-URL"
	HeaderHXHistoryRestoreRequest = "HX-History-Restore-Request"
	HeaderHXTarget                = "HX-Target"
)
