package hoaxapi

// User-facing failure messages, in the language of the rest of the interface.
const (
	MsgMissingBaseURL     = "API base URL kosong."
	MsgHealthUnreachable  = "Gagal menghubungi backend. Pastikan URL API sudah benar (HTTPS) dan Space aktif."
	MsgHealthStatus       = "Backend merespons kode %d"
	MsgPredictUnreachable = "Gagal terhubung ke backend. Pastikan API aktif dan dapat dijangkau."
	MsgPredictFallback    = "API tidak merespons dengan benar."
)
