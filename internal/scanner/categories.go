package scanner

import (
	"strings"

	"github.com/ayvor/assistant/core/internal/shared/types"
)

// categoryKeywords maps lowercase substrings to a category. Order matters:
// earlier rows win, so the more specific labels come first.
var categoryKeywords = []struct {
	keywords []string
	category types.Category
}{
	{[]string{"discord", "telegram", "whatsapp", "skype", "zoom", "slack", "viber", "teams"}, types.CategoryCommunication},
	{[]string{"code", "studio", "idea", "pycharm", "webstorm", "rider", "goland", "sublime", "notepad++", "git", "docker", "postman", "terminal"}, types.CategoryDevelopment},
	{[]string{"chrome", "firefox", "edge", "opera", "browser", "brave", "vivaldi", "yandex"}, types.CategoryBrowser},
	{[]string{"spotify", "vlc", "itunes", "winamp", "music", "player", "media", "obs", "audacity", "netflix"}, types.CategoryEntertainment},
	{[]string{"steam", "epic", "gog", "battle.net", "battlenet", "riot", "game", "minecraft", "roblox", "origin", "uplay", "ubisoft"}, types.CategoryGames},
	{[]string{"explorer", "taskmgr", "regedit", "control", "cmd", "powershell", "settings"}, types.CategorySystem},
	{[]string{"notepad", "calc", "paint", "7-zip", "7zip", "winrar", "zip", "everything", "totalcmd", "viewer"}, types.CategoryUtilities},
}

// classify picks a category by substring match against the display name and
// executable file name, both lowercased. No match means Other.
func classify(name, fileName string) types.Category {
	haystack := strings.ToLower(name) + " " + strings.ToLower(fileName)
	for _, row := range categoryKeywords {
		for _, kw := range row.keywords {
			if strings.Contains(haystack, kw) {
				return row.category
			}
		}
	}
	return types.CategoryOther
}
