package handler

import "time"

// timeNow is swapped in tests to pin filter defaults
var timeNow = time.Now
