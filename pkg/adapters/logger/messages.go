package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Command level messages (info)
		"Using %s encoder":                    "%s エンコーダーを使用します",
		"Found %d images in %s":               "%[2]s に %[1]d 枚の画像が見つかりました",
		"Output saved to %s (%d frames, %s)":  "出力を %s に保存しました (%d フレーム, %s)",
		"Encoded %d/%d frames":                "%d/%d フレームをエンコードしました",
		"Encoding failed after %d frames: %v": "%d フレーム後にエンコードが失敗しました: %v",
		"Debug output enabled: %s":            "デバッグ出力が有効です: %s",
		"Summary saved to %s":                 "サマリーを %s に保存しました",

		// Orchestrator
		"Starting pipeline":               "パイプラインを開始します",
		"Failed to encode video: %s":      "動画のエンコードに失敗しました: %s",
		"Failed to inspect output: %s":    "出力の検査に失敗しました: %s",
		"Failed to verify output: %s":     "出力の検証に失敗しました: %s",
		"Verified %s: %d samples, %dx%d":  "%s を検証しました: %d サンプル, %dx%d",
		"Failed to save debug output: %v": "デバッグ出力の保存に失敗しました: %v",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",

		// Encode stage
		"Encoding %d frames at %d fps":      "%d フレームを %d fps でエンコード中",
		"Video encoded: %d bytes":           "動画エンコード完了: %d バイト",
		"Close after error: %v":             "エラー後のクローズ: %v",
		"Failed to save debug frame %d: %v": "デバッグフレーム %d の保存に失敗しました: %v",

		// Inspect stage
		"Inspected %s: %s %dx%d, %d samples": "%s を検査しました: %s %dx%d, %d サンプル",
		"Snapshot saved: %s":                 "スナップショットを保存しました: %s",

		// Frame pipeline
		"Opened %s (%dx%d at %d fps)": "%s を開きました (%dx%d, %d fps)",
		"Encoded frame %d (%d bytes)": "フレーム %d をエンコードしました (%d バイト)",
		"Closed %s after %d frames":   "%s を %d フレームで閉じました",
		"Closed %s with error: %v":    "%s をエラーで閉じました: %v",
		"Failed to close %s: %v":      "%s を閉じられませんでした: %v",

		// Encoder selection
		"ffmpeg encoder not available (%s), falling back to built-in encoder": "ffmpeg エンコーダーが利用できません (%s)。内蔵エンコーダーを使用します",
	})
}
