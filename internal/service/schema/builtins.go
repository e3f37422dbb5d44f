package schema

import "github.com/asmelnikov/docgen-backend/internal/domain"

// Builtins returns the built-in field catalog: the non-custom definitions
// every fresh installation is seeded with. Keep this the single source of
// truth; the seeder upserts it by (key_name, entity_kind).
func Builtins() []domain.FieldDefinition {
	out := make([]domain.FieldDefinition, len(builtins))
	copy(out, builtins)
	return out
}

func str(s string) *string { return &s }

var builtins = []domain.FieldDefinition{
	// User registration form.
	{
		Name:            "Логин",
		KeyName:         "username",
		EntityKind:      domain.EntityKindUser,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[a-zA-Z0-9_-]{4,16}$`),
		IsRequired:      true,
		Placeholder:     str("Ваш логин пользователя"),
		ErrorText:       str("Имя пользователя должно быть уникальным, не должно содержать пробелов и быть от 4 до 16 символов."),
	},
	{
		Name:            "Пароль",
		KeyName:         "password",
		EntityKind:      domain.EntityKindUser,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^(?=.*\d)(?=.*[a-z])(?=.*[A-Z]).{8,}$`),
		IsRequired:      true,
		SecureText:      true,
		Placeholder:     str("Ваш пароль"),
		ErrorText:       str("Пароль должен быть длиннее 8 символов и содержать хотя бы одну цифру и заглавную букву."),
	},
	{
		Name:            "Фамилия",
		KeyName:         "last_name",
		EntityKind:      domain.EntityKindUser,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Ваша фамилия"),
	},
	{
		Name:            "Имя",
		KeyName:         "first_name",
		EntityKind:      domain.EntityKindUser,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Ваше имя"),
	},
	{
		Name:            "Отчество",
		KeyName:         "surname",
		EntityKind:      domain.EntityKindUser,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]*$`),
		Placeholder:     str("Ваше отчество"),
	},

	// Executor company registration.
	{
		Name:            "Краткое название компании",
		KeyName:         "company_name",
		EntityKind:      domain.EntityKindExecutor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[a-zA-Z0-9_"'\-«»а-яА-Я\s\.\,]{0,64}$`),
		IsRequired:      true,
		Placeholder:     str("Название компании с сокращёнными аббревиатурами"),
		ErrorText:       str("Длина названия не должна превышать 64 символа, а также не содержать особых символов."),
	},
	{
		Name:            "Полное название компании",
		KeyName:         "company_fullName",
		EntityKind:      domain.EntityKindExecutor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[a-zA-Z0-9_"'\-«»а-яА-Я\s\.\,]{0,256}$`),
		Placeholder:     str("Название компании с расшифровкой аббревиатур"),
		ErrorText:       str("Длина названия не должна превышать 256 символов, а также не содержать особых символов."),
	},
	{
		Name:            "Логин суперпользователя",
		KeyName:         "username",
		EntityKind:      domain.EntityKindExecutor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[a-zA-Z0-9_-]{4,16}$`),
		IsRequired:      true,
		Placeholder:     str("Введите логин суперпользователя"),
	},
	{
		Name:            "Пароль",
		KeyName:         "password",
		EntityKind:      domain.EntityKindExecutor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^(?=.*\d)(?=.*[a-z])(?=.*[A-Z]).{8,}$`),
		IsRequired:      true,
		SecureText:      true,
		Placeholder:     str("Введите пароль"),
	},
	{
		Name:            "Фамилия",
		KeyName:         "last_name",
		EntityKind:      domain.EntityKindExecutor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Ваша фамилия"),
	},
	{
		Name:            "Имя",
		KeyName:         "first_name",
		EntityKind:      domain.EntityKindExecutor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Ваше имя"),
	},
	{
		Name:            "Отчество",
		KeyName:         "surname",
		EntityKind:      domain.EntityKindExecutor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]*$`),
		Placeholder:     str("Ваше отчество"),
	},

	// Contractor company card.
	{
		Name:            "Краткое название компании",
		KeyName:         "company_name",
		EntityKind:      domain.EntityKindContractor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[a-zA-Z0-9_"'\-«»а-яА-Я\s\.\,]{0,64}$`),
		IsRequired:      true,
		Placeholder:     str("Название компании с сокращёнными аббревиатурами"),
		ErrorText:       str("Длина названия не должна превышать 64 символа, а также не содержать особых символов."),
	},
	{
		Name:            "Полное название компании",
		KeyName:         "company_fullName",
		EntityKind:      domain.EntityKindContractor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[a-zA-Z0-9_"'\-«»а-яА-Я\s\.\,]{0,256}$`),
		IsRequired:      true,
		Placeholder:     str("Название компании с расшифровкой аббревиатур"),
		ErrorText:       str("Длина названия не должна превышать 256 символов, а также не содержать особых символов."),
	},
	{
		Name:            "Город расположения заказчика",
		KeyName:         "contractor_city",
		EntityKind:      domain.EntityKindContractor,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[a-zA-Z0-9_.,а-яА-Я]{0,64}$`),
		IsRequired:      true,
		Placeholder:     str("Город расположения компании заказчика"),
		ErrorText:       str("Длина названия не должна превышать 64 символа, а также не содержать особых символов."),
	},

	// Template creation form.
	{
		Name:            "Название шаблона",
		KeyName:         "template_name",
		EntityKind:      domain.EntityKindTemplate,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^([(a-zA-Z0-9)|(а-яА-Я)]_*)*[^_]$`),
		IsRequired:      true,
		Placeholder:     str("Введите название шаблона документа"),
		ErrorText:       str("Название документа должно содержать только кириллицу, латиницу, цифры. Также допускается в названии нижнее подчёркивание `_`, но оно не должно начинаться и заканчиваться им."),
	},
	{
		Name:        "Файл шаблона",
		KeyName:     "template_file",
		EntityKind:  domain.EntityKindTemplate,
		Type:        domain.FieldTypeFile,
		IsRequired:  true,
		Placeholder: str("Отправьте файл шаблона в формате `.docx`"),
	},
	{
		Name:        "Тип документа",
		KeyName:     "template_type",
		EntityKind:  domain.EntityKindTemplate,
		Type:        domain.FieldTypeCombobox,
		IsRequired:  true,
		Placeholder: str("Выберите тип создаваемого документа"),
		RelatedInfo: &domain.ComboboxInfo{URL: "document/types/", ShowField: "name", SaveField: "code"},
	},
	{
		Name:        "Юридическое лицо исполнителя",
		KeyName:     "related_executor_person",
		EntityKind:  domain.EntityKindTemplate,
		Type:        domain.FieldTypeCombobox,
		IsRequired:  true,
		Placeholder: str("Юридическое лицо исполнителя договора"),
		RelatedInfo: &domain.ComboboxInfo{URL: "persons/executor/list/", ShowField: "initials", SaveField: "id"},
	},
	{
		Name:        "Юридическое лицо заказчика",
		KeyName:     "related_contractor_person",
		EntityKind:  domain.EntityKindTemplate,
		Type:        domain.FieldTypeCombobox,
		IsRequired:  true,
		Placeholder: str("Юридическое лицо заказчика по договору"),
		RelatedInfo: &domain.ComboboxInfo{URL: "persons/contractor/list/", ShowField: "initials", SaveField: "id"},
	},

	// Executor signatory persons.
	{
		Name:            "Фамилия юрлица",
		KeyName:         "last_name",
		EntityKind:      domain.EntityKindExecutorPerson,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Фамилия юридического лица исполнителя"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},
	{
		Name:            "Имя юрлица",
		KeyName:         "first_name",
		EntityKind:      domain.EntityKindExecutorPerson,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Имя юридического лица исполнителя"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},
	{
		Name:            "Отчество юрлица",
		KeyName:         "surname",
		EntityKind:      domain.EntityKindExecutorPerson,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]*$`),
		Placeholder:     str("Отчество юридического лица исполнителя"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},
	{
		Name:            "Должность юрлица",
		KeyName:         "post",
		EntityKind:      domain.EntityKindExecutorPerson,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я\s]{0,64}$`),
		Placeholder:     str("Должность юридического лица исполнителя в компании"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},

	// Contractor signatory persons.
	{
		Name:            "Фамилия юрлица",
		KeyName:         "last_name",
		EntityKind:      domain.EntityKindContractorPerson,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Фамилия юридического лица заказчика"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},
	{
		Name:            "Имя юрлица",
		KeyName:         "first_name",
		EntityKind:      domain.EntityKindContractorPerson,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Имя юридического лица заказчика"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},
	{
		Name:            "Отчество юрлица",
		KeyName:         "surname",
		EntityKind:      domain.EntityKindContractorPerson,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]*$`),
		Placeholder:     str("Отчество юридического лица заказчика"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},
	{
		Name:            "Должность юрлица",
		KeyName:         "post",
		EntityKind:      domain.EntityKindContractorPerson,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я\s]{0,64}$`),
		Placeholder:     str("Должность юридического лица заказчика в компании"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},
	{
		Name:        "Компания юридического лица заказчика",
		KeyName:     "company",
		EntityKind:  domain.EntityKindContractorPerson,
		Type:        domain.FieldTypeCombobox,
		IsRequired:  true,
		Placeholder: str("Выберите компанию в которой находится юридическое лицо заказчика"),
		RelatedInfo: &domain.ComboboxInfo{URL: "company/contractors/", ShowField: "company_name", SaveField: "id"},
	},

	// Custom field creation form (plain fields).
	{
		Name:            "Русское название поля",
		KeyName:         "name",
		EntityKind:      domain.EntityKindField,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Введите русское название поля"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},
	{
		Name:            "Ключевое название поля",
		KeyName:         "key_name",
		EntityKind:      domain.EntityKindField,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^\w{0,64}$`),
		IsRequired:      true,
		Placeholder:     str("Введите ключевое название поля"),
		ErrorText:       str("Значение должно быть уникальным, содержать только латиницу, а также не более 64 символов"),
	},
	{
		Name:        "Необходимое поле?",
		KeyName:     "is_required",
		EntityKind:  domain.EntityKindField,
		Type:        domain.FieldTypeBool,
		IsRequired:  true,
		Placeholder: str("Это необходимое поле?"),
	},
	{
		Name:            "Предложение записи для пользователя",
		KeyName:         "placeholder",
		EntityKind:      domain.EntityKindField,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^([(a-zA-Z0-9)|(а-яА-Я)]_*)*[^_]$`),
		Placeholder:     str("Укажите текст, который указывается в предложении."),
		ErrorText:       str("Текст должен состоять из кириллицы или латиницы."),
	},
	{
		Name:        "Тип поля",
		KeyName:     "type",
		EntityKind:  domain.EntityKindField,
		Type:        domain.FieldTypeCombobox,
		IsRequired:  true,
		Placeholder: str("Выберите тип поля из списка"),
		RelatedInfo: &domain.ComboboxInfo{URL: "fields/types/", ShowField: "value", SaveField: "id"},
	},
	{
		Name:        "Регулярное выражение для проверки",
		KeyName:     "validation_regex",
		EntityKind:  domain.EntityKindField,
		Type:        domain.FieldTypeText,
		Placeholder: str("Если значение должно проверяться, укажите тут регулярное выражение."),
	},
	{
		Name:            "Текст при ошибке валидации",
		KeyName:         "error_text",
		EntityKind:      domain.EntityKindField,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^([(a-zA-Z0-9)|(а-яА-Я)]_*)*[^_]$`),
		Placeholder:     str("Текст ошибки при несоответствии `validation_regex`."),
		ErrorText:       str("Неправильный формат текста."),
	},

	// Template-scoped document field creation form.
	{
		Name:        "Связанный шаблон",
		KeyName:     "related_template",
		EntityKind:  domain.EntityKindDocumentField,
		Type:        domain.FieldTypeCombobox,
		IsRequired:  true,
		Placeholder: str("Выберите шаблон для создания поля."),
		RelatedInfo: &domain.ComboboxInfo{URL: "templates/list/", ShowField: "name", SaveField: "id"},
	},
	{
		Name:            "Русское название поля",
		KeyName:         "name",
		EntityKind:      domain.EntityKindDocumentField,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^[а-яА-Я]+(-[а-яА-Я]+)*$`),
		IsRequired:      true,
		Placeholder:     str("Введите русское название поля"),
		ErrorText:       str("Значение должно содержать только кириллицу, а также не более 64 символов"),
	},
	{
		Name:            "Ключевое название поля",
		KeyName:         "key_name",
		EntityKind:      domain.EntityKindDocumentField,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^\w{0,64}$`),
		IsRequired:      true,
		Placeholder:     str("Введите ключевое название поля"),
		ErrorText:       str("Значение должно быть уникальным, содержать только латиницу, а также не более 64 символов"),
	},
	{
		Name:        "Необходимое поле?",
		KeyName:     "is_required",
		EntityKind:  domain.EntityKindDocumentField,
		Type:        domain.FieldTypeBool,
		IsRequired:  true,
		Placeholder: str("Это необходимое поле?"),
	},
	{
		Name:            "Предложение записи для пользователя",
		KeyName:         "placeholder",
		EntityKind:      domain.EntityKindDocumentField,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^([(a-zA-Z0-9)|(а-яА-Я)]_*)*[^_]$`),
		Placeholder:     str("Укажите текст, который указывается в предложении."),
		ErrorText:       str("Текст должен состоять из кириллицы или латиницы."),
	},
	{
		Name:        "Тип поля",
		KeyName:     "type",
		EntityKind:  domain.EntityKindDocumentField,
		Type:        domain.FieldTypeCombobox,
		IsRequired:  true,
		Placeholder: str("Выберите тип поля из списка"),
		RelatedInfo: &domain.ComboboxInfo{URL: "fields/types/", ShowField: "value", SaveField: "id"},
	},
	{
		Name:        "Регулярное выражение для проверки",
		KeyName:     "validation_regex",
		EntityKind:  domain.EntityKindDocumentField,
		Type:        domain.FieldTypeText,
		Placeholder: str("Если значение должно проверяться, укажите тут регулярное выражение."),
	},
	{
		Name:            "Текст при ошибке валидации",
		KeyName:         "error_text",
		EntityKind:      domain.EntityKindDocumentField,
		Type:            domain.FieldTypeText,
		ValidationRegex: str(`^([(a-zA-Z0-9)|(а-яА-Я)]_*)*[^_]$`),
		Placeholder:     str("Текст ошибки при несоответствии `validation_regex`."),
		ErrorText:       str("Неправильный формат текста."),
	},
}
