package ui

import "github.com/ytget/quickpapers/internal/app"

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyTagline            = "tagline"
	KeySubjectCode        = "subject_code"
	KeySubjectPlaceholder = "subject_placeholder"
	KeyUnknownSubject     = "unknown_subject"
	KeyYear               = "year"
	KeySession            = "session"
	KeySummer             = "summer"
	KeyWinter             = "winter"
	KeyComponent          = "component"
	KeyPaperType          = "paper_type"
	KeyQuestionPaper      = "question_paper"
	KeyMarkScheme         = "mark_scheme"
	KeySelect             = "select"
	KeyDownload           = "download"
	KeyReady              = "ready"
	KeyMissingFields      = "missing_fields"
	KeyInvalidInput       = "invalid_input"
	KeyAlreadyDownloaded  = "already_downloaded"
	KeyDownloading        = "downloading"
	KeyDownloadComplete   = "download_complete"
	KeyBusy               = "busy"
	KeyDownloadFailed     = "download_failed"
	KeyRecent             = "recent"
	KeyNoRecent           = "no_recent"
	KeyOpen               = "open"
	KeyReveal             = "reveal"
	KeyCopyPath           = "copy_path"
	KeyRemove             = "remove"
	KeyPathCopied         = "path_copied"
	KeyErrorOpeningFile   = "error_opening_file"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyOutputDirectory    = "output_directory"
	KeyRevealOnComplete   = "reveal_on_complete"
	KeyOpenOutputFolder   = "open_output_folder"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
)

// noticeKeys maps controller notices to their text keys
var noticeKeys = map[app.Notice]string{
	app.NoticeReady:             KeyReady,
	app.NoticeMissingFields:     KeyMissingFields,
	app.NoticeInvalidInput:      KeyInvalidInput,
	app.NoticeAlreadyDownloaded: KeyAlreadyDownloaded,
	app.NoticeDownloading:       KeyDownloading,
	app.NoticeComplete:          KeyDownloadComplete,
	app.NoticeBusy:              KeyBusy,
	app.NoticeError:             KeyDownloadFailed,
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// StatusText renders the status line for a controller state. Errors show
// their message verbatim, the other notices append the detail (a file name or
// a validation message) when there is one.
func (l *Localization) StatusText(state app.State) string {
	if state.Notice == app.NoticeError && state.Detail != "" {
		return state.Detail
	}

	key, ok := noticeKeys[state.Notice]
	if !ok {
		key = KeyReady
	}
	text := l.GetText(key)

	switch state.Notice {
	case app.NoticeAlreadyDownloaded:
		if state.Target.FileName != "" {
			return text + DetailSeparator + state.Target.FileName
		}
	case app.NoticeInvalidInput:
		if state.Detail != "" {
			return text + DetailSeparator + state.Detail
		}
	}
	return text
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "QuickPapers",
		KeyTagline:            "making exam prep easier.",
		KeySubjectCode:        "Subject code",
		KeySubjectPlaceholder: "e.g. 9709",
		KeyUnknownSubject:     "Subject not in catalog",
		KeyYear:               "Year",
		KeySession:            "Session",
		KeySummer:             "Summer",
		KeyWinter:             "Winter",
		KeyComponent:          "Paper",
		KeyPaperType:          "Type",
		KeyQuestionPaper:      "Question paper",
		KeyMarkScheme:         "Mark scheme",
		KeySelect:             "Select",
		KeyDownload:           "Download",
		KeyReady:              "Ready",
		KeyMissingFields:      "Please fill in all fields",
		KeyInvalidInput:       "Invalid input",
		KeyAlreadyDownloaded:  "File already downloaded",
		KeyDownloading:        "Downloading...",
		KeyDownloadComplete:   "Download complete.",
		KeyBusy:               "A download is already in progress",
		KeyDownloadFailed:     "Download failed",
		KeyRecent:             "Recent downloads",
		KeyNoRecent:           "No papers downloaded yet",
		KeyOpen:               "Open",
		KeyReveal:             "Show in folder",
		KeyCopyPath:           "Copy path",
		KeyRemove:             "Remove from list",
		KeyPathCopied:         "Path copied to clipboard",
		KeyErrorOpeningFile:   "Error opening file",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyOutputDirectory:    "Output Directory",
		KeyRevealOnComplete:   "Show paper in folder when done",
		KeyOpenOutputFolder:   "Open Papers Folder",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:           "QuickPapers",
		KeyTagline:            "подготовка к экзаменам проще.",
		KeySubjectCode:        "Код предмета",
		KeySubjectPlaceholder: "напр. 9709",
		KeyUnknownSubject:     "Предмет не найден в каталоге",
		KeyYear:               "Год",
		KeySession:            "Сессия",
		KeySummer:             "Лето",
		KeyWinter:             "Зима",
		KeyComponent:          "Работа",
		KeyPaperType:          "Тип",
		KeyQuestionPaper:      "Задания",
		KeyMarkScheme:         "Схема оценки",
		KeySelect:             "Выбрать",
		KeyDownload:           "Скачать",
		KeyReady:              "Готово",
		KeyMissingFields:      "Пожалуйста, заполните все поля",
		KeyInvalidInput:       "Неверные данные",
		KeyAlreadyDownloaded:  "Файл уже скачан",
		KeyDownloading:        "Загрузка...",
		KeyDownloadComplete:   "Загрузка завершена.",
		KeyBusy:               "Загрузка уже выполняется",
		KeyDownloadFailed:     "Ошибка загрузки",
		KeyRecent:             "Недавние загрузки",
		KeyNoRecent:           "Пока ничего не скачано",
		KeyOpen:               "Открыть",
		KeyReveal:             "Показать в папке",
		KeyCopyPath:           "Копировать путь",
		KeyRemove:             "Убрать из списка",
		KeyPathCopied:         "Путь скопирован в буфер обмена",
		KeyErrorOpeningFile:   "Ошибка открытия файла",
		KeySettings:           "Настройки",
		KeyFile:               "Файл",
		KeyLanguage:           "Язык",
		KeyOutputDirectory:    "Папка сохранения",
		KeyRevealOnComplete:   "Показывать файл в папке после загрузки",
		KeyOpenOutputFolder:   "Открыть папку с работами",
		KeySave:               "Сохранить",
		KeyCancel:             "Отмена",
		KeyBrowse:             "Обзор",
		KeySettingsSaved:      "Настройки успешно сохранены!",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:           "QuickPapers",
		KeyTagline:            "preparar exames ficou mais fácil.",
		KeySubjectCode:        "Código da disciplina",
		KeySubjectPlaceholder: "ex. 9709",
		KeyUnknownSubject:     "Disciplina fora do catálogo",
		KeyYear:               "Ano",
		KeySession:            "Sessão",
		KeySummer:             "Verão",
		KeyWinter:             "Inverno",
		KeyComponent:          "Prova",
		KeyPaperType:          "Tipo",
		KeyQuestionPaper:      "Enunciado",
		KeyMarkScheme:         "Critérios de correção",
		KeySelect:             "Selecionar",
		KeyDownload:           "Baixar",
		KeyReady:              "Pronto",
		KeyMissingFields:      "Por favor, preencha todos os campos",
		KeyInvalidInput:       "Dados inválidos",
		KeyAlreadyDownloaded:  "Arquivo já baixado",
		KeyDownloading:        "Baixando...",
		KeyDownloadComplete:   "Download concluído.",
		KeyBusy:               "Já existe um download em andamento",
		KeyDownloadFailed:     "Falha no download",
		KeyRecent:             "Downloads recentes",
		KeyNoRecent:           "Nenhuma prova baixada ainda",
		KeyOpen:               "Abrir",
		KeyReveal:             "Mostrar na pasta",
		KeyCopyPath:           "Copiar caminho",
		KeyRemove:             "Remover da lista",
		KeyPathCopied:         "Caminho copiado para a área de transferência",
		KeyErrorOpeningFile:   "Erro ao abrir arquivo",
		KeySettings:           "Configurações",
		KeyFile:               "Arquivo",
		KeyLanguage:           "Idioma",
		KeyOutputDirectory:    "Diretório de Saída",
		KeyRevealOnComplete:   "Mostrar a prova na pasta ao concluir",
		KeyOpenOutputFolder:   "Abrir Pasta de Provas",
		KeySave:               "Salvar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Procurar",
		KeySettingsSaved:      "Configurações salvas com sucesso!",
	}
}
