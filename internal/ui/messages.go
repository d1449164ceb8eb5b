package ui

// Status lines shown to the user.
const (
	MsgEmptyInput     = "Masukkan teks berita terlebih dahulu."
	MsgProcessing     = "Memproses di backend..."
	MsgSuccess        = "Berhasil memuat prediksi."
	MsgUnexpected     = "Terjadi kesalahan saat memproses."
	MsgMissingConfig  = "API base URL kosong. Setel HOAX_API_BASE_URL lalu jalankan ulang."
	MsgUsingBackend   = "Menggunakan backend: %s"
	MsgConnected      = "Tersambung ke backend: %s"
	MsgNothingToCopy  = "Belum ada hasil untuk dicopy."
	MsgCopied         = "Hasil berhasil disalin ke clipboard."
	MsgCopyFailed     = "Gagal menyalin ke clipboard."
	MsgNothingToShare = "Belum ada hasil untuk dibagikan."
	MsgShared         = "Hasil berhasil dibagikan."
	MsgShareFailed    = "Gagal membagikan hasil."
	MsgThemeSaveFail  = "Gagal menyimpan preferensi tema."
	MsgThemeChanged   = "Tema diubah ke %s."
)
