// Copyright (C) 2025 Sakina Labs (dev@sakina-ai.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
package triage

// Emergency contact numbers included in every crisis response (Oman).
const (
	EmergencyServicesNumber = "9999"
	LifeSupportCenterNumber = "25252525"
	AlMasarraHospitalNumber = "24567890"
)

const crisisMessageEnglish = `I understand that you're going through an extremely difficult time right now, and I appreciate your courage in talking to me.

🆘 **THIS IS VERY IMPORTANT**: If you have thoughts of harming yourself or others, please contact immediately:
- Emergency Services: 9999
- Life Support Center: 25252525
- Al Masarra Hospital: 24567890

You are not alone, and your life has great value. There are trained professionals who can help you right now.

Can you contact one of these numbers now? Or is there someone you trust who can help you?`

const crisisMessageMixed = `I understand أنك تمر بوقت صعب جداً right now, وأقدر شجاعتك في التحدث معي.

🆘 **هذا مهم جداً / THIS IS VERY IMPORTANT**: إذا كانت لديك أفكار لإيذاء نفسك أو الآخرين، يرجى التواصل فوراً مع:
- الطوارئ / Emergency: 9999
- مركز الحياة / Life Support Center: 25252525
- مستشفى المسرة / Al Masarra Hospital: 24567890

أنت لست وحدك، وحياتك لها قيمة كبيرة. You are not alone, and your life has great value.

هل يمكنك التواصل مع أحد هذه الأرقام الآن؟ Can you contact one of these numbers now?`

const crisisMessageArabic = `أفهم أنك تمر بوقت صعب جداً الآن، وأقدر شجاعتك في التحدث معي.

🆘 **هذا مهم جداً**: إذا كانت لديك أفكار لإيذاء نفسك أو الآخرين، يرجى التواصل فوراً مع:
- الطوارئ: 9999
- مركز الحياة للدعم النفسي: 25252525
- مستشفى المسرة: 24567890

أنت لست وحدك، وحياتك لها قيمة كبيرة. هناك أشخاص مدربون يمكنهم مساعدتك الآن.

هل يمكنك التواصل مع أحد هذه الأرقام الآن؟ أو هل هناك شخص تثق به يمكنه مساعدتك؟`

// CrisisMessage returns the fixed, pre-written crisis intervention response
// for the given language.
//
// # Description
//
// This is a pure lookup over three fixed templates (Arabic, English, and a
// mixed variant that interleaves both languages). Each template carries an
// empathetic opener, the emergency contact list, and a direct call-to-action
// question. It never calls a generator and never fails: this is the one
// guaranteed-available path in the system and must produce a response even
// when every external collaborator is down.
//
// Unrecognized language values fall back to the Arabic template, matching
// the service's primary audience.
func CrisisMessage(lang Language) string {
	switch lang {
	case LanguageEnglish:
		return crisisMessageEnglish
	case LanguageMixed:
		return crisisMessageMixed
	default:
		return crisisMessageArabic
	}
}
