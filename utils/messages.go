package utils

// Localized response messages
const (
	MsgUnauthorized  = "Unauthorized"
	MsgInternalError = "حدث خطأ في الخادم"
	MsgInvalidID     = "معرف غير صالح"
	MsgInvalidDate   = "تاريخ غير صالح"

	MsgLoginFailed        = "اسم المستخدم أو كلمة المرور غير صحيحة"
	MsgLoggedOut          = "تم تسجيل الخروج بنجاح"
	MsgUserNotFound       = "المستخدم غير موجود"
	MsgProfileUpdateFail  = "فشل في تحديث البروفايل"
	MsgUsersFetchFail     = "فشل في جلب المستخدمين"
	MsgUserInvalid        = "بيانات المستخدم غير صحيحة"
	MsgUserCreateFail     = "فشل في إنشاء المستخدم"
	MsgUsernameTaken      = "اسم المستخدم موجود بالفعل"
	MsgDashboardFetchFail = "فشل في جلب إحصائيات لوحة التحكم"
	MsgActivitiesFail     = "فشل في جلب الأنشطة الأخيرة"

	MsgCustomersFetchFail = "فشل في جلب العملاء"
	MsgCustomerInvalid    = "بيانات العميل غير صحيحة"
	MsgCustomerNotFound   = "العميل غير موجود"
	MsgCustomerUpdateFail = "فشل في تعديل العميل"
	MsgCustomerDeleted    = "تم حذف العميل بنجاح"
	MsgCustomerDeleteFail = "فشل في حذف العميل"
	MsgRenewFail          = "فشل في تجديد الاشتراك"
	MsgExpiringFetchFail  = "فشل في جلب العملاء المنتهيين"

	MsgIncomeFetchFail     = "فشل في جلب الإدخالات"
	MsgIncomeInvalid       = "بيانات الإدخال غير صحيحة"
	MsgIncomeNotFound      = "الإدخال غير موجود"
	MsgIncomeUpdateFail    = "فشل في تعديل الإدخال"
	MsgIncomeDeleteFail    = "فشل في حذف الإدخال"
	MsgPrintsFetchFail     = "فشل في جلب المطبوعات"
	MsgTotalAmountRequired = "المبلغ الكامل مطلوب عند اختيار العربون"
	MsgTotalBelowPaid      = "المبلغ الكامل يجب أن يكون أكبر من أو يساوي المبلغ المدفوع"
	MsgAmountPositive      = "المبلغ يجب أن يكون أكبر من صفر"

	MsgExpensesFetchFail = "فشل في جلب الإخراجات"
	MsgExpenseInvalid    = "بيانات الإخراج غير صحيحة"
	MsgExpenseNotFound   = "الإخراج غير موجود"
	MsgExpenseUpdateFail = "فشل في تعديل الإخراج"
	MsgExpenseDeleteFail = "فشل في حذف الإخراج"

	MsgEmployeesFetchFail = "فشل في جلب الموظفين"
	MsgEmployeeInvalid    = "بيانات الموظف غير صحيحة"
	MsgEmployeeNotFound   = "الموظف غير موجود"
	MsgEmployeeUpdateFail = "فشل في تعديل الموظف"
	MsgEmployeeDeleteFail = "فشل في حذف الموظف"

	MsgReceivablesFetchFail  = "فشل في جلب المستحقات"
	MsgReceivableInvalid     = "بيانات الدين غير صحيحة"
	MsgReceivableNotFound    = "المستحق غير موجود"
	MsgReceivableAlreadyPaid = "تم تسديد هذا المستحق مسبقاً"
	MsgReceivablePayFail     = "فشل في تسديد الدين"
	MsgReceivableDeleted     = "تم حذف الدين بنجاح"
	MsgReceivableDeleteFail  = "فشل في حذف الدين"

	MsgReportInvalid   = "بيانات التقرير غير صحيحة"
	MsgReportGenerated = "تم إنشاء التقرير بنجاح"
	MsgReportFail      = "فشل في إنشاء التقرير"

	MsgUploadInvalidType = "يُسمح فقط بملفات الصور و PDF"
	MsgUploadTooLarge    = "حجم الملف يتجاوز الحد المسموح"
	MsgUploadFail        = "فشل في رفع الملف"
	MsgFileNotFound      = "الملف غير موجود"

	UnknownCustomerName = "عميل غير محدد"
)
