// Package main provides localization for the framemux CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Logging":       "ログ",
		"Output":        "出力先",
		"Encoding":      "エンコード",
		"Source":        "入力フレーム",
		"Debug":         "デバッグ",

		// Root command
		"Encode pixel frames into H.264 MP4 movies":                                                   "ピクセルフレームをH.264のMP4動画にエンコード",
		"framemux converts RGB pixel frames to YUV420, encodes them as H.264 and writes an MP4 file.": "framemuxはRGBピクセルフレームをYUV420に変換し、H.264でエンコードしてMP4ファイルに書き出します。",

		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Error: %s":                     "エラー: %s",

		// Global flags
		"YAML configuration file":              "YAML設定ファイル",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (console, json)":           "ログ形式（console, json）",
		"Suppress all log output":              "すべてのログ出力を抑制",

		// Encode flags
		"Output MP4 file path":                                                 "出力MP4ファイルパス",
		"Output video width (default: 512)":                                    "出力動画の幅（デフォルト: 512）",
		"Output video height (default: 512)":                                   "出力動画の高さ（デフォルト: 512）",
		"Frames per second (default: 25)":                                      "フレームレート（デフォルト: 25）",
		"Number of frames to encode (0 = all)":                                 "エンコードするフレーム数（0 = すべて）",
		"H.264 encoder backend (pcm, ffmpeg, auto)":                            "H.264エンコーダーのバックエンド（pcm, ffmpeg, auto）",
		"Path to ffmpeg executable (falls back to FFMPEG_PATH env, then PATH)": "ffmpeg実行ファイルのパス（未指定時は環境変数FFMPEG_PATH、次にPATH）",
		"Fall back to the built-in encoder when ffmpeg is unavailable":         "ffmpegが利用できない場合は内蔵エンコーダーを使用",
		"Pixel format of source frames (rgba8888, rgb888, rgb565, alpha)":      "入力フレームのピクセル形式（rgba8888, rgb888, rgb565, alpha）",
		"Skip reading the written movie back":                                  "書き出した動画の読み戻し検証をスキップ",
		"Write a Markdown report of the run to this path":                      "実行結果のMarkdownレポートをこのパスに書き出す",
		"Save source frames and run metadata for inspection":                   "入力フレームと実行メタデータを確認用に保存",
		"Directory for debug output (default: ./debug)":                        "デバッグ出力先ディレクトリ（デフォルト: ./debug）",
		"Save every n-th source frame (default: 1)":                            "n フレームごとに入力フレームを保存（デフォルト: 1）",

		// Mandelbrot command
		"Encode a zooming Mandelbrot animation":       "ズームするマンデルブロ集合のアニメーションをエンコード",
		"Real part of the zoom center":                "ズーム中心の実部",
		"Imaginary part of the zoom center":           "ズーム中心の虚部",
		"Maximum iterations per pixel (default: 192)": "ピクセルあたりの最大反復回数（デフォルト: 192）",
		"Draw the frame number on every frame":        "各フレームにフレーム番号を描画",

		// Images command
		"Encode a directory of PNG or JPEG images":          "PNGまたはJPEG画像のディレクトリをエンコード",
		"Use the size of the first image as the video size": "最初の画像のサイズを動画サイズとして使用",
		"an image directory is required":                    "画像ディレクトリを指定してください",

		// Solid command
		"Encode frames of a single color":  "単色のフレームをエンコード",
		"Frame color (hex, e.g., #336699)": "フレームの色（16進数、例: #336699）",

		// Inspect command
		"Show the video track of an MP4 file":             "MP4ファイルの映像トラックを表示",
		"Save one decoded frame as PNG (requires ffmpeg)": "デコードした1フレームをPNGで保存（ffmpegが必要）",
		"Frame index for --snapshot":                      "--snapshot で保存するフレーム番号",
		"an MP4 file is required":                         "MP4ファイルを指定してください",
		"File:        %s":                                 "ファイル:       %s",
		"Codec:       %s (profile %d, level %d)":          "コーデック:     %s (プロファイル %d, レベル %d)",
		"Size:        %dx%d":                              "サイズ:         %dx%d",
		"Frames:      %d (%d keyframes)":                  "フレーム数:     %d (キーフレーム %d)",
		"Frame rate:  %.2f fps (timescale %d)":            "フレームレート: %.2f fps (タイムスケール %d)",
		"Duration:    %s":                                 "再生時間:       %s",
		"Snapshot:    %s":                                 "スナップショット: %s",

		// Summary report
		"Encode Summary":      "エンコードサマリー",
		"Item":                "項目",
		"Value":               "値",
		"Kind":                "種類",
		"Location":            "場所",
		"Available Frames":    "利用可能なフレーム数",
		"Settings":            "設定",
		"Encoder":             "エンコーダー",
		"fallback":            "フォールバック",
		"Video Size":          "動画サイズ",
		"Frame Rate":          "フレームレート",
		"Pixel Format":        "ピクセル形式",
		"Video":               "動画",
		"File":                "ファイル",
		"Frames":              "フレーム数",
		"Duration":            "再生時間",
		"File Size":           "ファイルサイズ",
		"Encoded Data":        "エンコードデータ量",
		"Track":               "トラック",
		"Codec":               "コーデック",
		"profile":             "プロファイル",
		"level":               "レベル",
		"Samples":             "サンプル数",
		"Keyframes":           "キーフレーム数",
		"Measured Frame Rate": "実測フレームレート",
		"Generated at %s":     "%s に生成",

		// Version command
		"Show version information": "バージョン情報を表示",
		"framemux version %s":      "framemux バージョン %s",
	})
}
