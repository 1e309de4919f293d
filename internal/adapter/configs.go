package adapter

// Built-in target configurations. Candidate order within each list is
// site-specific knowledge learned from the live panels; do not reorder.

// BuiltinConfigs returns the adapter configurations shipped with the engine.
func BuiltinConfigs() []Config {
	return []Config{
		heavenNet(),
		girlsNavi(),
		deliTown(),
		nightBoard(),
		fuuzokuColle(),
	}
}

// NewBuiltinRegistry returns a registry pre-populated with BuiltinConfigs.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, cfg := range BuiltinConfigs() {
		// Built-ins are validated by tests; a registration failure here is a
		// programming error.
		if err := r.Register(cfg); err != nil {
			panic(err)
		}
	}
	return r
}

func heavenNet() Config {
	return Config{
		Name:     "heaven-net",
		BaseURL:  "https://shop.heaven-net.jp/admin/",
		LoginURL: "https://shop.heaven-net.jp/admin/login",
		Login: LoginSelectors{
			Identifier: []string{"#login_id", `input[name="login_id"]`, `input[name="shop_id"]`},
			Password:   []string{"#login_pw", `input[name="login_pw"]`, `input[type="password"]`},
			Submit:     []string{"#login_btn", `button[type="submit"]`, `input[type="submit"]`},
		},
		Diary: &DiarySelectors{
			ListPath: "diary/",
			NewPost:  []string{`a[href*="diary/new"]`, `input[value="新規投稿"]`, ".btn-diary-new"},
			Title:    []string{`input[name="title"]`, "#diary_title"},
			Body:     []string{`textarea[name="body"]`, "#diary_body", "textarea.diary-editor"},
			Image:    []string{`input[type="file"][name="image1"]`, `input[type="file"]`},
			Submit:   []string{`input[value="投稿する"]`, `button[type="submit"]`, "#diary_submit"},
		},
		Cast: &CastSelectors{
			EditPath: "cast/edit",
			Name:     []string{`input[name="cast_name"]`, "#name"},
			Age:      []string{`input[name="age"]`, `select[name="age"]`},
			Height:   []string{`input[name="height"]`},
			Bust:     []string{`input[name="bust"]`},
			Waist:    []string{`input[name="waist"]`},
			Hip:      []string{`input[name="hip"]`},
			Cup:      []string{`select[name="cup"]`, `input[name="cup"]`},
			Comment:  []string{`textarea[name="shop_comment"]`, `textarea[name="comment"]`},
			Submit:   []string{`input[value="更新する"]`, `button[type="submit"]`},
		},
		Schedule: &ScheduleSelectors{
			PagePath: "schedule/weekly",
			Date:     []string{`input[name="work_date"]`, ".schedule-date input"},
			Start:    []string{`select[name="start_time"]`, `input[name="start_time"]`},
			End:      []string{`select[name="end_time"]`, `input[name="end_time"]`},
			Status:   []string{`select[name="status"]`},
			Submit:   []string{`input[value="登録"]`, `button[type="submit"]`},
		},
		// heaven-net redirects failed logins to a tips page whose URL looks
		// clean, so the URL heuristic alone misclassifies it.
		SuccessChecks: []string{PredicateURLClean, PredicateNoLoginForm},
	}
}

func girlsNavi() Config {
	return Config{
		Name:     "girls-navi",
		BaseURL:  "https://admin.girls-navi.net/",
		LoginURL: "https://admin.girls-navi.net/login.php",
		Login: LoginSelectors{
			Identifier: []string{`input[name="mail"]`, `input[name="email"]`, "#email"},
			Password:   []string{`input[name="pass"]`, `input[type="password"]`},
			Submit:     []string{`input[name="login"]`, `button.login-submit`, `input[type="submit"]`},
		},
		Diary: &DiarySelectors{
			ListPath: "diary_list.php",
			NewPost:  []string{`a[href="diary_edit.php"]`, `input[value="新規作成"]`, ".new-diary"},
			Title:    []string{`input[name="diary_title"]`},
			Body:     []string{`textarea[name="diary_text"]`},
			Image:    []string{`input[type="file"][name="photo"]`},
			Submit:   []string{`input[value="登録する"]`, `input[name="regist"]`},
		},
		Schedule: &ScheduleSelectors{
			PagePath: "shukkin.php",
			Date:     []string{`input[name="date[]"]`, `input.shukkin-date`},
			Start:    []string{`select[name="from[]"]`},
			End:      []string{`select[name="to[]"]`},
			Submit:   []string{`input[value="更新"]`, `input[name="update"]`},
		},
	}
}

func deliTown() Config {
	return Config{
		Name:     "deli-town",
		BaseURL:  "https://manage.deli-town.com/shop/",
		LoginURL: "https://manage.deli-town.com/shop/auth/login",
		Login: LoginSelectors{
			Identifier: []string{"#shop_code", `input[name="shop_code"]`},
			Password:   []string{"#password", `input[name="password"]`},
			Submit:     []string{`button[name="do_login"]`, `button[type="submit"]`},
		},
		Diary: &DiarySelectors{
			ListPath: "diary",
			NewPost:  []string{`a.btn-create[href*="diary"]`, `a[href*="diary/create"]`, `input[value="新規投稿"]`},
			Body:     []string{`textarea[name="content"]`, "#content"},
			Image:    []string{`input[type="file"][name="images[]"]`, `input[type="file"]`},
			Submit:   []string{`button[name="publish"]`, `input[value="公開"]`, `button[type="submit"]`},
		},
		Cast: &CastSelectors{
			EditPath: "girls/profile",
			Name:     []string{`input[name="girl_name"]`},
			Age:      []string{`input[name="girl_age"]`},
			Height:   []string{`input[name="girl_height"]`},
			Bust:     []string{`input[name="girl_b"]`},
			Waist:    []string{`input[name="girl_w"]`},
			Hip:      []string{`input[name="girl_h"]`},
			Cup:      []string{`select[name="girl_cup"]`},
			Comment:  []string{`textarea[name="pr_text"]`},
			Submit:   []string{`button[name="save"]`, `input[value="保存"]`},
		},
	}
}

func nightBoard() Config {
	return Config{
		Name:     "night-board",
		BaseURL:  "https://partner.night-board.jp/",
		LoginURL: "https://partner.night-board.jp/signin",
		Login: LoginSelectors{
			Identifier: []string{`input[name="account"]`, "#account"},
			Password:   []string{`input[name="password"]`, "#password"},
			Submit:     []string{`button.signin-button`, `button[type="submit"]`},
		},
		// night-board carries only a diary surface; profile and schedule are
		// managed by the portal operator.
		Diary: &DiarySelectors{
			ListPath: "posts",
			NewPost:  []string{`a[href="/posts/new"]`, ".post-new-button"},
			Title:    []string{`input[name="post[title]"]`},
			Body:     []string{`textarea[name="post[body]"]`},
			Submit:   []string{`input[name="commit"]`, `button[type="submit"]`},
		},
		SuccessChecks: []string{PredicateURLClean, PredicateNoLoginForm},
	}
}

func fuuzokuColle() Config {
	return Config{
		Name:     "fuzoku-colle",
		BaseURL:  "https://cms.fuzoku-colle.net/",
		LoginURL: "https://cms.fuzoku-colle.net/index.php?page=login",
		Login: LoginSelectors{
			Identifier: []string{`input[name="user_id"]`, `input[name="login"]`},
			Password:   []string{`input[name="user_pw"]`, `input[type="password"]`},
			Submit:     []string{`input[name="btn_login"]`, `input[type="submit"]`},
		},
		Diary: &DiarySelectors{
			ListPath: "index.php?page=diary",
			NewPost:  []string{`a[href*="page=diary_add"]`, `input[value="新規作成"]`, `input[value="新規投稿"]`},
			Title:    []string{`input[name="d_title"]`},
			Body:     []string{`textarea[name="d_body"]`},
			Image:    []string{`input[type="file"][name="d_img"]`},
			Submit:   []string{`input[name="btn_add"]`, `input[value="投稿"]`},
		},
		Schedule: &ScheduleSelectors{
			PagePath: "index.php?page=schedule",
			AddRow:   []string{`input[value="行を追加"]`, ".add-row"},
			Date:     []string{`input[name="s_date"]`},
			Start:    []string{`select[name="s_start"]`},
			End:      []string{`select[name="s_end"]`},
			Status:   []string{`select[name="s_status"]`},
			Submit:   []string{`input[name="btn_save"]`, `input[value="保存"]`},
		},
	}
}
